package handler_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"claimproc/internal/domain"
	"claimproc/internal/service"
)

// mockClaimService is a mock implementation of service.ClaimService. It lives
// in this test package rather than mocks/ because a shared mock of the
// service layer would drag internal/service into every package's test binary.
type mockClaimService struct {
	mock.Mock
}

func (m *mockClaimService) ProcessClaim(ctx context.Context, input service.ProcessInput) (*domain.ClaimRecord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimRecord), args.Error(1)
}

func (m *mockClaimService) ReprocessClaim(ctx context.Context, claimID string) (*domain.ClaimRecord, error) {
	args := m.Called(ctx, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimRecord), args.Error(1)
}

func (m *mockClaimService) GetByClaimID(ctx context.Context, claimID string) (*domain.Claim, error) {
	args := m.Called(ctx, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

func (m *mockClaimService) List(ctx context.Context, offset, limit int) ([]domain.Claim, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Claim), args.Int(1), args.Error(2)
}

func (m *mockClaimService) GetDownloadURL(ctx context.Context, claimID string) (string, error) {
	args := m.Called(ctx, claimID)
	return args.String(0), args.Error(1)
}
