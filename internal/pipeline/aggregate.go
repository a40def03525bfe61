package pipeline

import (
	"time"

	"claimproc/internal/domain"
)

// BuildClaimRecord merges the three branch results and run metadata into the
// final record. It performs no I/O and no further validation; a nil branch
// result is treated as that branch's default. ClassifiedTypes is derived
// from the classification map, so it always matches the routed categories.
func BuildClaimRecord(
	claimID string,
	totalPages int,
	classified domain.ClassificationMap,
	identity *domain.IdentityInfo,
	discharge *domain.DischargeSummary,
	bill *domain.BillSummary,
) *domain.ClaimRecord {
	if identity == nil {
		identity = defaultIdentity()
	}
	if discharge == nil {
		discharge = defaultDischarge()
	}
	if bill == nil {
		bill = defaultBill()
	}

	return &domain.ClaimRecord{
		ClaimID:          claimID,
		IdentityInfo:     *identity,
		DischargeSummary: *discharge,
		BillingDetails:   *bill,
		ProcessingMetadata: domain.ProcessingMetadata{
			TotalPages:      totalPages,
			ClassifiedTypes: classified.ClassifiedTypes(),
			Timestamp:       time.Now().UTC(),
		},
	}
}
