package pipeline

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"claimproc/internal/domain"
	"claimproc/internal/port"
)

const defaultClassifyConcurrency = 5

// Pipeline runs the fixed classification-extraction-aggregation topology for
// claim documents. It is built once at startup and carries no per-request
// state; every request flows through Process with its own arguments.
type Pipeline struct {
	llm                 port.ChatCompleter
	classifyConcurrency int
}

// New creates a Pipeline backed by the given chat completer.
// classifyConcurrency bounds the number of concurrent per-page
// classification calls; values < 1 fall back to the default.
func New(llm port.ChatCompleter, classifyConcurrency int) *Pipeline {
	if classifyConcurrency < 1 {
		classifyConcurrency = defaultClassifyConcurrency
	}
	return &Pipeline{
		llm:                 llm,
		classifyConcurrency: classifyConcurrency,
	}
}

// Process executes the full pipeline for one claim: classify every page,
// route page sets to the three extraction branches, run the branches
// concurrently, and aggregate their results into a ClaimRecord.
//
// Branch-level failures never surface here; a failed branch degrades to its
// typed default with confidence low. Process returns an error only when the
// surrounding request is canceled or times out, in which case no partial
// record is returned.
func (p *Pipeline) Process(ctx context.Context, claimID string, pages []domain.Page) (*domain.ClaimRecord, error) {
	log.Printf("pipeline.Process: started claim_id=%s pages=%d", claimID, len(pages))

	classified, err := p.ClassifyPages(ctx, pages)
	if err != nil {
		return nil, fmt.Errorf("pipeline: classification aborted: %w", err)
	}

	var (
		identity  *domain.IdentityInfo
		discharge *domain.DischargeSummary
		bill      *domain.BillSummary
	)

	// The three branches share no mutable state: each reads its own page-text
	// slice and writes only its own result variable before the join.
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		identity = p.ExtractIdentity(ctx, collectPageTexts(pages, classified[domain.CategoryIdentityDocument]))
	}()
	go func() {
		defer wg.Done()
		discharge = p.ExtractDischarge(ctx, collectPageTexts(pages, classified[domain.CategoryDischargeSummary]))
	}()
	go func() {
		defer wg.Done()
		bill = p.ExtractBill(ctx, collectPageTexts(pages, classified[domain.CategoryItemizedBill]))
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline: canceled during extraction: %w", err)
	}

	record := BuildClaimRecord(claimID, len(pages), classified, identity, discharge, bill)

	log.Printf("pipeline.Process: completed claim_id=%s types=%v", claimID, record.ProcessingMetadata.ClassifiedTypes)
	return record, nil
}

// collectPageTexts combines the text of the given page numbers into a single
// string with page markers, in ascending page order. Blank pages are skipped.
func collectPageTexts(pages []domain.Page, numbers []int) string {
	if len(numbers) == 0 {
		return ""
	}
	textByNumber := make(map[int]string, len(pages))
	for _, p := range pages {
		textByNumber[p.Number] = p.Text
	}

	sorted := make([]int, len(numbers))
	copy(sorted, numbers)
	sort.Ints(sorted)

	var sections []string
	for _, num := range sorted {
		text := textByNumber[num]
		if strings.TrimSpace(text) == "" {
			continue
		}
		sections = append(sections, fmt.Sprintf("--- Page %d ---\n%s", num, text))
	}
	return strings.Join(sections, "\n\n")
}
