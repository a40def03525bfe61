package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"claimproc/internal/config"
	"claimproc/internal/domain"
	"claimproc/internal/pipeline"
	"claimproc/internal/port"
)

// ProcessInput is the DTO for claim processing requests.
type ProcessInput struct {
	ClaimID string
	File    multipart.File
	Header  *multipart.FileHeader
}

// ClaimService defines the claim processing contract.
type ClaimService interface {
	ProcessClaim(ctx context.Context, input ProcessInput) (*domain.ClaimRecord, error)
	ReprocessClaim(ctx context.Context, claimID string) (*domain.ClaimRecord, error)
	GetByClaimID(ctx context.Context, claimID string) (*domain.Claim, error)
	List(ctx context.Context, offset, limit int) ([]domain.Claim, int, error)
	GetDownloadURL(ctx context.Context, claimID string) (string, error)
}

type claimService struct {
	claimRepo port.ClaimRepository
	storage   port.ObjectStorage
	extractor port.PageExtractor
	pipe      *pipeline.Pipeline
	cfg       *config.S3Config
}

// NewClaimService creates a new ClaimService implementation.
func NewClaimService(
	claimRepo port.ClaimRepository,
	storage port.ObjectStorage,
	extractor port.PageExtractor,
	pipe *pipeline.Pipeline,
	cfg *config.S3Config,
) ClaimService {
	return &claimService{
		claimRepo: claimRepo,
		storage:   storage,
		extractor: extractor,
		pipe:      pipe,
		cfg:       cfg,
	}
}

func (s *claimService) ProcessClaim(ctx context.Context, input ProcessInput) (*domain.ClaimRecord, error) {
	claimID := strings.TrimSpace(input.ClaimID)
	if claimID == "" {
		return nil, domain.ErrEmptyClaimID
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading uploaded file: %w", err)
	}

	// Magic-byte content type detection
	sniffLen := len(data)
	if sniffLen > 512 {
		sniffLen = 512
	}
	detectedType := http.DetectContentType(data[:sniffLen])
	if _, validContent := domain.AllowedContentTypes[detectedType]; !validContent {
		return nil, domain.ErrUnsupportedFileType
	}

	id := uuid.New()
	s3Key := fmt.Sprintf("claims/%s/%s", claimID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	claim := &domain.Claim{
		ID:       id,
		ClaimID:  claimID,
		FileName: input.Header.Filename,
		S3Bucket: s.cfg.Bucket,
		S3Key:    s3Key,
		Status:   domain.ClaimStatusPending,
	}

	log.Printf("claimService.ProcessClaim: received claim %s (%s, %d bytes)",
		claimID, input.Header.Filename, input.Header.Size)

	if err := s.claimRepo.Create(ctx, claim); err != nil {
		log.Printf("claimService.ProcessClaim: failed to create claim row: %v", err)
		return nil, err
	}

	// Archive the source document before processing
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		log.Printf("claimService.ProcessClaim: S3 upload failed for claim %s: %v", claimID, err)
		_ = s.claimRepo.UpdateStatus(ctx, id, domain.ClaimStatusFailed, domain.ErrUploadFailed.Error())
		return nil, domain.ErrUploadFailed
	}

	if err := s.claimRepo.UpdateStatus(ctx, id, domain.ClaimStatusProcessing, ""); err != nil {
		return nil, fmt.Errorf("updating claim status: %w", err)
	}

	pages, err := s.extractor.ExtractPages(ctx, data)
	if err != nil {
		log.Printf("claimService.ProcessClaim: page extraction failed for claim %s: %v", claimID, err)
		// An unreadable document is not worth archiving.
		if delErr := s.storage.Delete(ctx, s.cfg.Bucket, s3Key); delErr != nil {
			log.Printf("claimService.ProcessClaim: failed to delete archived object for claim %s: %v", claimID, delErr)
		}
		_ = s.claimRepo.UpdateStatus(ctx, id, domain.ClaimStatusFailed, err.Error())
		return nil, err
	}

	return s.runPipeline(ctx, id, claimID, pages)
}

// ReprocessClaim re-runs the pipeline for an already-archived claim using
// the document stored in S3. Any prior record is overwritten on success.
func (s *claimService) ReprocessClaim(ctx context.Context, claimID string) (*domain.ClaimRecord, error) {
	claim, err := s.claimRepo.GetByClaimID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	log.Printf("claimService.ReprocessClaim: reprocessing claim %s from s3://%s/%s",
		claimID, claim.S3Bucket, claim.S3Key)

	data, err := s.storage.Download(ctx, claim.S3Bucket, claim.S3Key)
	if err != nil {
		log.Printf("claimService.ReprocessClaim: S3 download failed for claim %s: %v", claimID, err)
		return nil, fmt.Errorf("downloading archived document: %w", err)
	}

	if err := s.claimRepo.UpdateStatus(ctx, claim.ID, domain.ClaimStatusProcessing, ""); err != nil {
		return nil, fmt.Errorf("updating claim status: %w", err)
	}

	pages, err := s.extractor.ExtractPages(ctx, data)
	if err != nil {
		log.Printf("claimService.ReprocessClaim: page extraction failed for claim %s: %v", claimID, err)
		_ = s.claimRepo.UpdateStatus(ctx, claim.ID, domain.ClaimStatusFailed, err.Error())
		return nil, err
	}

	return s.runPipeline(ctx, claim.ID, claimID, pages)
}

// runPipeline executes the pipeline for extracted pages and persists the
// outcome, shared by first-time processing and reprocessing.
func (s *claimService) runPipeline(ctx context.Context, id uuid.UUID, claimID string, pages []domain.Page) (*domain.ClaimRecord, error) {
	record, err := s.pipe.Process(ctx, claimID, pages)
	if err != nil {
		log.Printf("claimService.runPipeline: pipeline failed for claim %s: %v", claimID, err)
		_ = s.claimRepo.UpdateStatus(ctx, id, domain.ClaimStatusFailed, err.Error())
		return nil, err
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshalling claim record: %w", err)
	}
	if err := s.claimRepo.SaveRecord(ctx, id, record.ProcessingMetadata.TotalPages, raw); err != nil {
		log.Printf("claimService.runPipeline: failed to save record for claim %s: %v", claimID, err)
		return nil, err
	}

	log.Printf("claimService.runPipeline: completed claim %s (%d pages, %d categories)",
		claimID, record.ProcessingMetadata.TotalPages, len(record.ProcessingMetadata.ClassifiedTypes))

	return record, nil
}

func (s *claimService) GetByClaimID(ctx context.Context, claimID string) (*domain.Claim, error) {
	return s.claimRepo.GetByClaimID(ctx, claimID)
}

func (s *claimService) List(ctx context.Context, offset, limit int) ([]domain.Claim, int, error) {
	return s.claimRepo.List(ctx, offset, limit)
}

func (s *claimService) GetDownloadURL(ctx context.Context, claimID string) (string, error) {
	claim, err := s.claimRepo.GetByClaimID(ctx, claimID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, claim.S3Bucket, claim.S3Key, s.cfg.PresignExpiry)
}
