package pipeline

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"claimproc/internal/domain"
)

// ClassifyPages classifies every page into a document category with bounded
// concurrency; pages are independent, so one page's failure never affects
// another's. The only error returned is context cancellation.
func (p *Pipeline) ClassifyPages(ctx context.Context, pages []domain.Page) (domain.ClassificationMap, error) {
	categories := make([]domain.DocumentCategory, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.classifyConcurrency)

	for i := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			categories[i] = p.classifyPage(gctx, pages[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return GroupByCategory(pages, categories), nil
}

// classifyPage resolves one page's category via a single collaborator call.
// Collaborator failure, malformed output, or an out-of-set category all
// resolve to the catch-all category. Blank pages skip the call entirely.
func (p *Pipeline) classifyPage(ctx context.Context, page domain.Page) domain.DocumentCategory {
	if strings.TrimSpace(page.Text) == "" {
		return domain.CategoryOther
	}

	raw, err := p.llm.Complete(ctx, classifySystemPrompt, page.Text)
	if err != nil {
		log.Printf("pipeline.classifyPage: page %d classification failed: %v", page.Number, err)
		return domain.CategoryOther
	}

	var parsed struct {
		DocumentType string `json:"document_type"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("pipeline.classifyPage: page %d returned malformed response: %v", page.Number, err)
		return domain.CategoryOther
	}

	category := domain.ParseCategory(parsed.DocumentType)
	if string(category) != parsed.DocumentType {
		log.Printf("pipeline.classifyPage: page %d returned invalid type %q, defaulting to %s",
			page.Number, parsed.DocumentType, domain.CategoryOther)
	}
	return category
}
