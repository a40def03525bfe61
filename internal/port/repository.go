package port

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"claimproc/internal/domain"
)

// ClaimRepository persists processed claims.
type ClaimRepository interface {
	Create(ctx context.Context, claim *domain.Claim) error
	GetByClaimID(ctx context.Context, claimID string) (*domain.Claim, error)
	List(ctx context.Context, offset, limit int) ([]domain.Claim, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ClaimStatus, errorMsg string) error
	SaveRecord(ctx context.Context, id uuid.UUID, totalPages int, record json.RawMessage) error
}
