package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"claimproc/internal/domain"
	"claimproc/mocks"
)

func TestClassifyPages(t *testing.T) {
	llm := new(mocks.MockChatCompleter)
	llm.On("Complete", mock.Anything, classifySystemPrompt, "hospital bill text").
		Return(`{"document_type": "itemized_bill"}`, nil)
	llm.On("Complete", mock.Anything, classifySystemPrompt, "aadhaar card text").
		Return(`{"document_type": "identity_document"}`, nil)

	p := New(llm, 2)
	pages := []domain.Page{
		{Number: 1, Text: "hospital bill text"},
		{Number: 2, Text: "aadhaar card text"},
	}

	grouped, err := p.ClassifyPages(context.Background(), pages)

	require.NoError(t, err)
	assert.Equal(t, []int{1}, grouped[domain.CategoryItemizedBill])
	assert.Equal(t, []int{2}, grouped[domain.CategoryIdentityDocument])
	llm.AssertExpectations(t)
}

func TestClassifyPages_BlankPageSkipsCall(t *testing.T) {
	llm := new(mocks.MockChatCompleter)

	p := New(llm, 1)
	pages := []domain.Page{{Number: 1, Text: "   \n\t "}}

	grouped, err := p.ClassifyPages(context.Background(), pages)

	require.NoError(t, err)
	assert.Equal(t, []int{1}, grouped[domain.CategoryOther])
	llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestClassifyPages_CollaboratorErrorDefaultsToOther(t *testing.T) {
	llm := new(mocks.MockChatCompleter)
	llm.On("Complete", mock.Anything, classifySystemPrompt, mock.Anything).
		Return("", errors.New("upstream unavailable"))

	p := New(llm, 1)
	pages := []domain.Page{{Number: 1, Text: "some text"}}

	grouped, err := p.ClassifyPages(context.Background(), pages)

	require.NoError(t, err)
	assert.Equal(t, []int{1}, grouped[domain.CategoryOther])
}

func TestClassifyPages_MalformedResponseDefaultsToOther(t *testing.T) {
	llm := new(mocks.MockChatCompleter)
	llm.On("Complete", mock.Anything, classifySystemPrompt, mock.Anything).
		Return("this is not json", nil)

	p := New(llm, 1)
	pages := []domain.Page{{Number: 1, Text: "some text"}}

	grouped, err := p.ClassifyPages(context.Background(), pages)

	require.NoError(t, err)
	assert.Equal(t, []int{1}, grouped[domain.CategoryOther])
}

func TestClassifyPages_InvalidCategoryDefaultsToOther(t *testing.T) {
	llm := new(mocks.MockChatCompleter)
	llm.On("Complete", mock.Anything, classifySystemPrompt, mock.Anything).
		Return(`{"document_type": "tax_return"}`, nil)

	p := New(llm, 1)
	pages := []domain.Page{{Number: 1, Text: "some text"}}

	grouped, err := p.ClassifyPages(context.Background(), pages)

	require.NoError(t, err)
	assert.Equal(t, []int{1}, grouped[domain.CategoryOther])
}

func TestClassifyPages_OneFailureDoesNotAffectOthers(t *testing.T) {
	llm := new(mocks.MockChatCompleter)
	llm.On("Complete", mock.Anything, classifySystemPrompt, "readable bill").
		Return(`{"document_type": "itemized_bill"}`, nil)
	llm.On("Complete", mock.Anything, classifySystemPrompt, "garbled page").
		Return("", errors.New("timeout"))

	p := New(llm, 2)
	pages := []domain.Page{
		{Number: 1, Text: "readable bill"},
		{Number: 2, Text: "garbled page"},
	}

	grouped, err := p.ClassifyPages(context.Background(), pages)

	require.NoError(t, err)
	assert.Equal(t, []int{1}, grouped[domain.CategoryItemizedBill])
	assert.Equal(t, []int{2}, grouped[domain.CategoryOther])
}

func TestClassifyPages_CanceledContext(t *testing.T) {
	llm := new(mocks.MockChatCompleter)
	llm.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return(`{"document_type": "other"}`, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(llm, 1)
	pages := []domain.Page{{Number: 1, Text: "text"}}

	_, err := p.ClassifyPages(ctx, pages)

	assert.ErrorIs(t, err, context.Canceled)
}
