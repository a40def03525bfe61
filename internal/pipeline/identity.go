package pipeline

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"claimproc/internal/domain"
)

const identityFieldCount = 5

func defaultIdentity() *domain.IdentityInfo {
	return &domain.IdentityInfo{Confidence: domain.ConfidenceLow}
}

// ExtractIdentity extracts structured identity data from the combined text
// of the identity document pages. Empty input returns the typed default
// without a collaborator call; collaborator failure or a structurally
// invalid payload returns the same default.
func (p *Pipeline) ExtractIdentity(ctx context.Context, text string) *domain.IdentityInfo {
	if strings.TrimSpace(text) == "" {
		log.Printf("pipeline.ExtractIdentity: no identity pages to process")
		return defaultIdentity()
	}

	raw, err := p.llm.Complete(ctx, identitySystemPrompt, text)
	if err != nil {
		log.Printf("pipeline.ExtractIdentity: collaborator call failed: %v", err)
		return defaultIdentity()
	}

	var parsed struct {
		PatientName       *string `json:"patient_name"`
		DateOfBirth       *string `json:"date_of_birth"`
		PolicyNumber      *string `json:"policy_number"`
		MemberID          *string `json:"member_id"`
		InsuranceProvider *string `json:"insurance_provider"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("pipeline.ExtractIdentity: malformed payload: %v", err)
		return defaultIdentity()
	}

	info := &domain.IdentityInfo{
		PatientName:       parsed.PatientName,
		DateOfBirth:       parsed.DateOfBirth,
		PolicyNumber:      parsed.PolicyNumber,
		MemberID:          parsed.MemberID,
		InsuranceProvider: parsed.InsuranceProvider,
	}
	info.Confidence = ScoreCompleteness(countNonNil(
		info.PatientName,
		info.DateOfBirth,
		info.PolicyNumber,
		info.MemberID,
		info.InsuranceProvider,
	), identityFieldCount)
	return info
}

func countNonNil(fields ...*string) int {
	filled := 0
	for _, f := range fields {
		if f != nil {
			filled++
		}
	}
	return filled
}
