package port

import (
	"context"

	"claimproc/internal/domain"
)

// PageExtractor abstracts page-level text extraction from an uploaded
// claim document.
type PageExtractor interface {
	ExtractPages(ctx context.Context, data []byte) ([]domain.Page, error)
}
