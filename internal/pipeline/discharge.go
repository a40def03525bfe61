package pipeline

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"claimproc/internal/domain"
)

const dischargeFieldCount = 5

func defaultDischarge() *domain.DischargeSummary {
	return &domain.DischargeSummary{Confidence: domain.ConfidenceLow}
}

// ExtractDischarge extracts structured discharge summary data from the
// combined text of the discharge summary pages. Failure handling mirrors
// ExtractIdentity: every fault path yields the typed default.
func (p *Pipeline) ExtractDischarge(ctx context.Context, text string) *domain.DischargeSummary {
	if strings.TrimSpace(text) == "" {
		log.Printf("pipeline.ExtractDischarge: no discharge pages to process")
		return defaultDischarge()
	}

	raw, err := p.llm.Complete(ctx, dischargeSystemPrompt, text)
	if err != nil {
		log.Printf("pipeline.ExtractDischarge: collaborator call failed: %v", err)
		return defaultDischarge()
	}

	var parsed struct {
		Diagnosis         *string `json:"diagnosis"`
		AdmissionDate     *string `json:"admission_date"`
		DischargeDate     *string `json:"discharge_date"`
		TreatingPhysician *string `json:"treating_physician"`
		HospitalName      *string `json:"hospital_name"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("pipeline.ExtractDischarge: malformed payload: %v", err)
		return defaultDischarge()
	}

	summary := &domain.DischargeSummary{
		Diagnosis:         parsed.Diagnosis,
		AdmissionDate:     parsed.AdmissionDate,
		DischargeDate:     parsed.DischargeDate,
		TreatingPhysician: parsed.TreatingPhysician,
		HospitalName:      parsed.HospitalName,
	}
	summary.Confidence = ScoreCompleteness(countNonNil(
		summary.Diagnosis,
		summary.AdmissionDate,
		summary.DischargeDate,
		summary.TreatingPhysician,
		summary.HospitalName,
	), dischargeFieldCount)
	return summary
}
