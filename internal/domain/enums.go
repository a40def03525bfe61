package domain

// DocumentCategory is one of the fixed document types a claim page can be
// classified into. CategoryOther is the catch-all for pages that fit nowhere
// else and for classifier failures.
type DocumentCategory string

const (
	CategoryClaimForms          DocumentCategory = "claim_forms"
	CategoryChequeOrBankDetails DocumentCategory = "cheque_or_bank_details"
	CategoryIdentityDocument    DocumentCategory = "identity_document"
	CategoryItemizedBill        DocumentCategory = "itemized_bill"
	CategoryDischargeSummary    DocumentCategory = "discharge_summary"
	CategoryPrescription        DocumentCategory = "prescription"
	CategoryInvestigationReport DocumentCategory = "investigation_report"
	CategoryCashReceipt         DocumentCategory = "cash_receipt"
	CategoryOther               DocumentCategory = "other"
)

// Categories is the closed set of valid document categories.
var Categories = map[DocumentCategory]bool{
	CategoryClaimForms:          true,
	CategoryChequeOrBankDetails: true,
	CategoryIdentityDocument:    true,
	CategoryItemizedBill:        true,
	CategoryDischargeSummary:    true,
	CategoryPrescription:        true,
	CategoryInvestigationReport: true,
	CategoryCashReceipt:         true,
	CategoryOther:               true,
}

// ParseCategory maps a raw classifier value onto the closed category set.
// Anything outside the set resolves to CategoryOther.
func ParseCategory(s string) DocumentCategory {
	c := DocumentCategory(s)
	if Categories[c] {
		return c
	}
	return CategoryOther
}

// Confidence is a qualitative tier derived from extraction completeness or
// line-item count. It is always computed by the pipeline, never taken from
// the extraction collaborator.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ClaimStatus represents the lifecycle of a processed claim.
type ClaimStatus string

const (
	ClaimStatusPending    ClaimStatus = "pending"
	ClaimStatusProcessing ClaimStatus = "processing"
	ClaimStatusCompleted  ClaimStatus = "completed"
	ClaimStatusFailed     ClaimStatus = "failed"
)

// FileType represents the allowed file types for claim upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
}
