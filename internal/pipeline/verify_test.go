package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"claimproc/internal/domain"
)

func TestVerifyBill_RecomputesLineTotals(t *testing.T) {
	items := []domain.BillLineItem{
		{Description: "Room charges", Quantity: 5, UnitPrice: 1000, TotalPrice: 9999},
		{Description: "Surgery", Quantity: 2, UnitPrice: 1500, TotalPrice: 1},
	}

	verified, verifiedTotal, mismatch := VerifyBill(items, 8500)

	assert.Equal(t, 5000.0, verified[0].TotalPrice)
	assert.Equal(t, 3000.0, verified[1].TotalPrice)
	assert.Equal(t, 8000.0, verifiedTotal)
	assert.True(t, mismatch)
}

func TestVerifyBill_MatchingTotal(t *testing.T) {
	items := []domain.BillLineItem{
		{Description: "Consultation", Quantity: 2, UnitPrice: 350.25},
	}

	_, verifiedTotal, mismatch := VerifyBill(items, 700.50)

	assert.Equal(t, 700.50, verifiedTotal)
	assert.False(t, mismatch)
}

func TestVerifyBill_ToleranceBoundary(t *testing.T) {
	items := []domain.BillLineItem{
		{Description: "Medication", Quantity: 1, UnitPrice: 100.00},
	}

	// Half a cent sits inside the tolerance.
	_, _, mismatch := VerifyBill(items, 100.005)
	assert.False(t, mismatch)

	// Exactly one cent is still within tolerance, in both directions;
	// float64 puts these differences a few ulps off 0.01.
	items[0].UnitPrice = 100.00
	_, _, mismatch = VerifyBill(items, 100.01)
	assert.False(t, mismatch)

	items[0].UnitPrice = 100.00
	_, _, mismatch = VerifyBill(items, 99.99)
	assert.False(t, mismatch)

	// Two cents is out.
	items[0].UnitPrice = 100.00
	_, _, mismatch = VerifyBill(items, 100.02)
	assert.True(t, mismatch)
}

func TestVerifyBill_EmptyItems(t *testing.T) {
	verified, verifiedTotal, mismatch := VerifyBill(nil, 0)

	assert.Empty(t, verified)
	assert.Equal(t, 0.0, verifiedTotal)
	assert.False(t, mismatch)
}

func TestVerifyBill_EmptyItemsWithReportedTotal(t *testing.T) {
	_, verifiedTotal, mismatch := VerifyBill(nil, 500)

	assert.Equal(t, 0.0, verifiedTotal)
	assert.True(t, mismatch)
}

func TestVerifyBill_FractionalQuantity(t *testing.T) {
	items := []domain.BillLineItem{
		{Description: "IV fluids", Quantity: 1.5, UnitPrice: 200},
	}

	verified, verifiedTotal, _ := VerifyBill(items, 300)

	assert.Equal(t, 300.0, verified[0].TotalPrice)
	assert.Equal(t, 300.0, verifiedTotal)
}
