package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"claimproc/internal/domain"
	"claimproc/internal/port"
)

type claimRepo struct {
	db *sqlx.DB
}

// NewClaimRepo creates a new PostgreSQL-backed ClaimRepository.
func NewClaimRepo(db *sqlx.DB) port.ClaimRepository {
	return &claimRepo{db: db}
}

func (r *claimRepo) Create(ctx context.Context, claim *domain.Claim) error {
	now := time.Now().UTC()
	claim.CreatedAt = now
	claim.UpdatedAt = now
	if claim.Record == nil {
		claim.Record = json.RawMessage("{}")
	}

	query := `INSERT INTO claims
		(id, claim_id, file_name, s3_bucket, s3_key, total_pages, status, record, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		claim.ID, claim.ClaimID, claim.FileName, claim.S3Bucket, claim.S3Key,
		claim.TotalPages, claim.Status, claim.Record, claim.ErrorMsg,
		claim.CreatedAt, claim.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateClaimID
		}
		return fmt.Errorf("claimRepo.Create: %w", err)
	}
	return nil
}

func (r *claimRepo) GetByClaimID(ctx context.Context, claimID string) (*domain.Claim, error) {
	var claim domain.Claim
	err := r.db.GetContext(ctx, &claim,
		"SELECT * FROM claims WHERE claim_id = $1", claimID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("claimRepo.GetByClaimID: %w", err)
	}
	return &claim, nil
}

func (r *claimRepo) List(ctx context.Context, offset, limit int) ([]domain.Claim, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM claims"); err != nil {
		return nil, 0, fmt.Errorf("claimRepo.List count: %w", err)
	}

	var claims []domain.Claim
	err := r.db.SelectContext(ctx, &claims,
		"SELECT * FROM claims ORDER BY created_at DESC OFFSET $1 LIMIT $2", offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("claimRepo.List: %w", err)
	}
	return claims, total, nil
}

func (r *claimRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ClaimStatus, errorMsg string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE claims SET status = $1, error_message = $2, updated_at = $3 WHERE id = $4",
		status, errorMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("claimRepo.UpdateStatus: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *claimRepo) SaveRecord(ctx context.Context, id uuid.UUID, totalPages int, record json.RawMessage) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE claims SET status = $1, total_pages = $2, record = $3, error_message = '', updated_at = $4
		 WHERE id = $5`,
		domain.ClaimStatusCompleted, totalPages, record, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("claimRepo.SaveRecord: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
