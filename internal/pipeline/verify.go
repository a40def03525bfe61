package pipeline

import (
	"math"

	"claimproc/internal/domain"
)

// totalTolerance absorbs floating-point and rounding noise in currency
// figures when comparing the reported total against the recomputed one.
const totalTolerance = 0.01

// VerifyBill recomputes every line item's total price as quantity times
// unit price, overwriting whatever was reported, and sums them into the
// verified total. The mismatch flag is set when the reported calculated
// total differs from the verified total by more than the tolerance.
// VerifyBill never fails.
func VerifyBill(items []domain.BillLineItem, calculatedTotal float64) ([]domain.BillLineItem, float64, bool) {
	var verifiedTotal float64
	for i := range items {
		items[i].TotalPrice = round2(items[i].Quantity * items[i].UnitPrice)
		verifiedTotal += items[i].TotalPrice
	}
	verifiedTotal = round2(verifiedTotal)

	// Round the difference before comparing: a one-cent gap like
	// |100.00 - 99.99| lands a few ulps above 0.01 in float64 and must
	// still count as within tolerance.
	mismatch := round2(math.Abs(calculatedTotal-verifiedTotal)) > totalTolerance
	return items, verifiedTotal, mismatch
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
