package pdftext

import (
	"bytes"
	"context"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"

	"claimproc/internal/domain"
	"claimproc/internal/port"
)

type extractor struct{}

// NewExtractor creates a PDF-backed PageExtractor.
func NewExtractor() port.PageExtractor {
	return &extractor{}
}

// ExtractPages reads the text content of every page in the PDF. It returns
// ErrCorruptDocument for unreadable input, and ErrNoExtractableText when no
// page yields any text (image-only scans need OCR, which this service does
// not perform).
func (e *extractor) ExtractPages(_ context.Context, data []byte) (pages []domain.Page, err error) {
	// The pdf library panics on some malformed inputs instead of returning
	// an error.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pdftext.ExtractPages: panic while reading PDF: %v", r)
			pages, err = nil, domain.ErrCorruptDocument
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("pdftext.ExtractPages: failed to open PDF: %v", err)
		return nil, domain.ErrCorruptDocument
	}

	total := reader.NumPage()
	if total == 0 {
		return nil, domain.ErrCorruptDocument
	}

	pages = make([]domain.Page, 0, total)
	hasText := false
	for num := 1; num <= total; num++ {
		page := reader.Page(num)

		text := ""
		if !page.V.IsNull() {
			content, err := page.GetPlainText(nil)
			if err != nil {
				// A single unreadable page degrades to empty text; the
				// classifier routes it to the catch-all category.
				log.Printf("pdftext.ExtractPages: page %d text extraction failed: %v", num, err)
			} else {
				text = strings.TrimSpace(content)
			}
		}
		if text != "" {
			hasText = true
		}
		pages = append(pages, domain.Page{Number: num, Text: text})
	}

	if !hasText {
		log.Printf("pdftext.ExtractPages: no extractable text found across %d page(s)", total)
		return nil, domain.ErrNoExtractableText
	}

	log.Printf("pdftext.ExtractPages: extracted %d page(s)", len(pages))
	return pages, nil
}
