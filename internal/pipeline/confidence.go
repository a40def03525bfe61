package pipeline

import "claimproc/internal/domain"

// Confidence thresholds are part of the pipeline's contract: lower bounds
// are inclusive, so a completeness ratio of exactly 0.8 scores high and
// exactly 0.4 scores medium.
const (
	completenessHigh   = 0.8
	completenessMedium = 0.4

	itemCountHigh   = 3
	itemCountMedium = 1
)

// ScoreCompleteness derives a confidence tier from the ratio of filled
// fields to expected fields.
func ScoreCompleteness(filled, expected int) domain.Confidence {
	if expected <= 0 {
		return domain.ConfidenceLow
	}
	ratio := float64(filled) / float64(expected)
	switch {
	case ratio >= completenessHigh:
		return domain.ConfidenceHigh
	case ratio >= completenessMedium:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// ScoreItemCount derives a confidence tier from the number of surviving
// bill line items.
func ScoreItemCount(count int) domain.Confidence {
	switch {
	case count >= itemCountHigh:
		return domain.ConfidenceHigh
	case count >= itemCountMedium:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
