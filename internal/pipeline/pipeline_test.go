package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"claimproc/internal/domain"
	"claimproc/mocks"
)

func TestProcess(t *testing.T) {
	llm := new(mocks.MockChatCompleter)
	llm.On("Complete", mock.Anything, classifySystemPrompt, "bill page").
		Return(`{"document_type": "itemized_bill"}`, nil)
	llm.On("Complete", mock.Anything, classifySystemPrompt, "id page").
		Return(`{"document_type": "identity_document"}`, nil)
	llm.On("Complete", mock.Anything, classifySystemPrompt, "discharge page").
		Return(`{"document_type": "discharge_summary"}`, nil)
	llm.On("Complete", mock.Anything, identitySystemPrompt, mock.Anything).
		Return(`{"patient_name": "Ravi Kumar", "date_of_birth": "1985-03-12", "policy_number": "POL-1", "member_id": "M-1", "insurance_provider": "Star Health"}`, nil)
	llm.On("Complete", mock.Anything, dischargeSystemPrompt, mock.Anything).
		Return(`{"diagnosis": "Appendicitis", "admission_date": "2025-06-01", "discharge_date": "2025-06-05", "treating_physician": "Dr. Mehta", "hospital_name": "City Hospital"}`, nil)
	llm.On("Complete", mock.Anything, billSystemPrompt, mock.Anything).
		Return(`{"items": [{"description": "Room", "quantity": 5, "unit_price": 1000}, {"description": "Surgery", "quantity": 2, "unit_price": 1500}], "calculated_total": 8500}`, nil)

	p := New(llm, 2)
	pages := []domain.Page{
		{Number: 1, Text: "bill page"},
		{Number: 2, Text: "id page"},
		{Number: 3, Text: "discharge page"},
	}

	record, err := p.Process(context.Background(), "CLM-001", pages)

	require.NoError(t, err)
	assert.Equal(t, "CLM-001", record.ClaimID)
	assert.Equal(t, 3, record.ProcessingMetadata.TotalPages)
	assert.Equal(t,
		[]string{"discharge_summary", "identity_document", "itemized_bill"},
		record.ProcessingMetadata.ClassifiedTypes)
	assert.Equal(t, domain.ConfidenceHigh, record.IdentityInfo.Confidence)
	assert.Equal(t, domain.ConfidenceHigh, record.DischargeSummary.Confidence)
	assert.Equal(t, 8000.0, record.BillingDetails.VerifiedTotal)
	assert.True(t, record.BillingDetails.TotalMismatch)
	assert.WithinDuration(t, time.Now().UTC(), record.ProcessingMetadata.Timestamp, 5*time.Second)
}

func TestProcess_ZeroPages(t *testing.T) {
	llm := new(mocks.MockChatCompleter)

	p := New(llm, 1)
	record, err := p.Process(context.Background(), "CLM-EMPTY", nil)

	require.NoError(t, err)
	assert.Equal(t, 0, record.ProcessingMetadata.TotalPages)
	assert.Empty(t, record.ProcessingMetadata.ClassifiedTypes)
	assert.Equal(t, domain.ConfidenceLow, record.IdentityInfo.Confidence)
	assert.Equal(t, domain.ConfidenceLow, record.DischargeSummary.Confidence)
	assert.Equal(t, domain.ConfidenceLow, record.BillingDetails.Confidence)
	llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcess_BranchFailureIsIsolated(t *testing.T) {
	llm := new(mocks.MockChatCompleter)
	llm.On("Complete", mock.Anything, classifySystemPrompt, "bill page").
		Return(`{"document_type": "itemized_bill"}`, nil)
	llm.On("Complete", mock.Anything, classifySystemPrompt, "id page").
		Return(`{"document_type": "identity_document"}`, nil)
	// Identity branch fails outright; billing branch succeeds.
	llm.On("Complete", mock.Anything, identitySystemPrompt, mock.Anything).
		Return("", errors.New("upstream 500"))
	llm.On("Complete", mock.Anything, billSystemPrompt, mock.Anything).
		Return(`{"items": [{"description": "Room", "quantity": 1, "unit_price": 2000}], "calculated_total": 2000}`, nil)

	p := New(llm, 2)
	pages := []domain.Page{
		{Number: 1, Text: "bill page"},
		{Number: 2, Text: "id page"},
	}

	record, err := p.Process(context.Background(), "CLM-002", pages)

	require.NoError(t, err)
	assert.Nil(t, record.IdentityInfo.PatientName)
	assert.Equal(t, domain.ConfidenceLow, record.IdentityInfo.Confidence)
	assert.Len(t, record.BillingDetails.Items, 1)
	assert.Equal(t, 2000.0, record.BillingDetails.VerifiedTotal)
}

func TestProcess_CanceledContext(t *testing.T) {
	llm := new(mocks.MockChatCompleter)
	llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"document_type": "other"}`, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(llm, 1)
	pages := []domain.Page{{Number: 1, Text: "text"}}

	record, err := p.Process(ctx, "CLM-003", pages)

	assert.Nil(t, record)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectPageTexts(t *testing.T) {
	pages := []domain.Page{
		{Number: 1, Text: "first"},
		{Number: 2, Text: "second"},
		{Number: 3, Text: "third"},
	}

	combined := collectPageTexts(pages, []int{3, 1})

	assert.Equal(t, "--- Page 1 ---\nfirst\n\n--- Page 3 ---\nthird", combined)
}

func TestCollectPageTexts_SkipsBlankPages(t *testing.T) {
	pages := []domain.Page{
		{Number: 1, Text: "content"},
		{Number: 2, Text: "   "},
	}

	combined := collectPageTexts(pages, []int{1, 2})

	assert.Equal(t, "--- Page 1 ---\ncontent", combined)
}

func TestCollectPageTexts_NoPages(t *testing.T) {
	assert.Equal(t, "", collectPageTexts(nil, nil))
}
