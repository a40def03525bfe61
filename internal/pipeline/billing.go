package pipeline

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"claimproc/internal/domain"
)

func defaultBill() *domain.BillSummary {
	return &domain.BillSummary{
		Items:      []domain.BillLineItem{},
		Confidence: domain.ConfidenceLow,
	}
}

// lineItemCandidate is one raw line item as returned by the extraction
// collaborator. Fields are untyped because the model is free to return
// numbers, numeric strings, or garbage; coercion decides what survives.
// Quantity stays raw so an absent key (defaults to 1) can be told apart
// from an explicit null (drops the item).
type lineItemCandidate struct {
	Description interface{}     `json:"description"`
	Quantity    json.RawMessage `json:"quantity"`
	UnitPrice   interface{}     `json:"unit_price"`
}

// ExtractBill extracts and verifies billing data from the combined text of
// the itemized bill pages. Malformed line items are dropped silently; a
// missing quantity defaults to 1. The reported calculated_total is kept
// as-is, while the verified total is always recomputed from the items.
func (p *Pipeline) ExtractBill(ctx context.Context, text string) *domain.BillSummary {
	if strings.TrimSpace(text) == "" {
		log.Printf("pipeline.ExtractBill: no bill pages to process")
		return defaultBill()
	}

	raw, err := p.llm.Complete(ctx, billSystemPrompt, text)
	if err != nil {
		log.Printf("pipeline.ExtractBill: collaborator call failed: %v", err)
		return defaultBill()
	}

	var parsed struct {
		Items           []lineItemCandidate `json:"items"`
		CalculatedTotal interface{}         `json:"calculated_total"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("pipeline.ExtractBill: malformed payload: %v", err)
		return defaultBill()
	}

	items := parseLineItems(parsed.Items)
	calculatedTotal, _ := toFloat(parsed.CalculatedTotal) // malformed reported total coerces to 0

	items, verifiedTotal, mismatch := VerifyBill(items, calculatedTotal)

	return &domain.BillSummary{
		Items:           items,
		CalculatedTotal: calculatedTotal,
		VerifiedTotal:   verifiedTotal,
		TotalMismatch:   mismatch,
		Confidence:      ScoreItemCount(len(items)),
	}
}

// parseLineItems keeps the candidates that carry a usable description and
// unit price. A candidate without a quantity gets quantity 1; a candidate
// with a non-numeric quantity or price is dropped, not reported.
func parseLineItems(candidates []lineItemCandidate) []domain.BillLineItem {
	items := make([]domain.BillLineItem, 0, len(candidates))
	for _, c := range candidates {
		description, ok := c.Description.(string)
		if !ok || strings.TrimSpace(description) == "" {
			continue
		}

		quantity := 1.0
		if len(c.Quantity) > 0 {
			var v interface{}
			if err := json.Unmarshal(c.Quantity, &v); err != nil {
				continue
			}
			q, ok := toFloat(v) // null decodes to nil and fails coercion
			if !ok {
				continue
			}
			quantity = q
		}

		unitPrice, ok := toFloat(c.UnitPrice)
		if !ok {
			continue
		}

		items = append(items, domain.BillLineItem{
			Description: description,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
		})
	}
	return items
}

// toFloat coerces a JSON-decoded value to float64. Numeric strings are
// accepted the way the extraction collaborator tends to emit them.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
