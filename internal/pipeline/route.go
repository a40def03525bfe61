package pipeline

import (
	"fmt"
	"sort"

	"claimproc/internal/domain"
)

// GroupByCategory groups page numbers by their resolved category, ascending
// within each category, dropping categories with no pages. It is a pure
// function: the page set is partitioned exactly, with no page duplicated or
// dropped. A length mismatch between pages and categories is a programming
// error, not a runtime condition to report.
func GroupByCategory(pages []domain.Page, categories []domain.DocumentCategory) domain.ClassificationMap {
	if len(pages) != len(categories) {
		panic(fmt.Sprintf("pipeline: GroupByCategory called with %d pages and %d categories", len(pages), len(categories)))
	}

	grouped := make(domain.ClassificationMap)
	for i, page := range pages {
		grouped[categories[i]] = append(grouped[categories[i]], page.Number)
	}
	for _, numbers := range grouped {
		sort.Ints(numbers)
	}
	return grouped
}
