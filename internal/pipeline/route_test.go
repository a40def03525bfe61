package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"claimproc/internal/domain"
)

func TestGroupByCategory(t *testing.T) {
	pages := []domain.Page{
		{Number: 1, Text: "bill"},
		{Number: 2, Text: "id"},
		{Number: 3, Text: "bill"},
		{Number: 4, Text: "misc"},
	}
	categories := []domain.DocumentCategory{
		domain.CategoryItemizedBill,
		domain.CategoryIdentityDocument,
		domain.CategoryItemizedBill,
		domain.CategoryOther,
	}

	grouped := GroupByCategory(pages, categories)

	assert.Len(t, grouped, 3)
	assert.Equal(t, []int{1, 3}, grouped[domain.CategoryItemizedBill])
	assert.Equal(t, []int{2}, grouped[domain.CategoryIdentityDocument])
	assert.Equal(t, []int{4}, grouped[domain.CategoryOther])
}

func TestGroupByCategory_SortsPageNumbers(t *testing.T) {
	pages := []domain.Page{
		{Number: 7, Text: "a"},
		{Number: 2, Text: "b"},
		{Number: 5, Text: "c"},
	}
	categories := []domain.DocumentCategory{
		domain.CategoryDischargeSummary,
		domain.CategoryDischargeSummary,
		domain.CategoryDischargeSummary,
	}

	grouped := GroupByCategory(pages, categories)

	assert.Equal(t, []int{2, 5, 7}, grouped[domain.CategoryDischargeSummary])
}

func TestGroupByCategory_Empty(t *testing.T) {
	grouped := GroupByCategory(nil, nil)
	assert.Empty(t, grouped)
}

func TestGroupByCategory_LengthMismatchPanics(t *testing.T) {
	pages := []domain.Page{{Number: 1}}
	assert.Panics(t, func() {
		GroupByCategory(pages, nil)
	})
}

func TestClassifiedTypes_Sorted(t *testing.T) {
	m := domain.ClassificationMap{
		domain.CategoryItemizedBill:     {1},
		domain.CategoryIdentityDocument: {2},
		domain.CategoryDischargeSummary: {3},
	}

	assert.Equal(t,
		[]string{"discharge_summary", "identity_document", "itemized_bill"},
		m.ClassifiedTypes())
}
