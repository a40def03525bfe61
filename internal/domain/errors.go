package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrEmptyClaimID        = errors.New("claim_id must not be empty")
	ErrDuplicateClaimID    = errors.New("claim already exists for this claim_id")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrCorruptDocument     = errors.New("corrupt or unreadable document")
	ErrNoExtractableText   = errors.New("no extractable text found in document")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)
