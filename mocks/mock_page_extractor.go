package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"claimproc/internal/domain"
)

// MockPageExtractor is a mock implementation of port.PageExtractor.
type MockPageExtractor struct {
	mock.Mock
}

func (m *MockPageExtractor) ExtractPages(ctx context.Context, data []byte) ([]domain.Page, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Page), args.Error(1)
}
