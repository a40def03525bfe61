package domain

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Page holds the extracted text of a single claim document page.
// Numbers are 1-indexed to match the page numbering of the source document.
type Page struct {
	Number int    `json:"page_number"`
	Text   string `json:"text"`
}

// ClassificationMap groups page numbers by resolved document category.
// Page numbers are ascending within each category; categories with no
// pages are never present.
type ClassificationMap map[DocumentCategory][]int

// ClassifiedTypes returns the sorted names of the categories present.
func (m ClassificationMap) ClassifiedTypes() []string {
	types := make([]string, 0, len(m))
	for c := range m {
		types = append(types, string(c))
	}
	sort.Strings(types)
	return types
}

// IdentityInfo is the identity agent's extraction result. Nil fields were
// not found in the document.
type IdentityInfo struct {
	PatientName       *string    `json:"patient_name"`
	DateOfBirth       *string    `json:"date_of_birth"`
	PolicyNumber      *string    `json:"policy_number"`
	MemberID          *string    `json:"member_id"`
	InsuranceProvider *string    `json:"insurance_provider"`
	Confidence        Confidence `json:"confidence"`
}

// DischargeSummary is the discharge agent's extraction result.
type DischargeSummary struct {
	Diagnosis         *string    `json:"diagnosis"`
	AdmissionDate     *string    `json:"admission_date"`
	DischargeDate     *string    `json:"discharge_date"`
	TreatingPhysician *string    `json:"treating_physician"`
	HospitalName      *string    `json:"hospital_name"`
	Confidence        Confidence `json:"confidence"`
}

// BillLineItem is one verified charge on an itemized bill. TotalPrice is
// always recomputed as Quantity * UnitPrice, never trusted from source.
type BillLineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// BillSummary is the billing agent's extraction result after verification.
// CalculatedTotal is the grand total as reported by the extraction
// collaborator; VerifiedTotal is independently summed from the items.
type BillSummary struct {
	Items           []BillLineItem `json:"items"`
	CalculatedTotal float64        `json:"calculated_total"`
	VerifiedTotal   float64        `json:"verified_total"`
	TotalMismatch   bool           `json:"total_mismatch"`
	Confidence      Confidence     `json:"confidence"`
}

// ProcessingMetadata describes a single pipeline run.
type ProcessingMetadata struct {
	TotalPages      int       `json:"total_pages"`
	ClassifiedTypes []string  `json:"classified_types"`
	Timestamp       time.Time `json:"timestamp"`
}

// ClaimRecord is the final aggregate produced for one claim request.
type ClaimRecord struct {
	ClaimID            string             `json:"claim_id"`
	IdentityInfo       IdentityInfo       `json:"identity_info"`
	DischargeSummary   DischargeSummary   `json:"discharge_summary"`
	BillingDetails     BillSummary        `json:"billing_details"`
	ProcessingMetadata ProcessingMetadata `json:"processing_metadata"`
}

// Claim is the persisted row for a processed claim document.
type Claim struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	ClaimID    string          `db:"claim_id" json:"claim_id"`
	FileName   string          `db:"file_name" json:"file_name"`
	S3Bucket   string          `db:"s3_bucket" json:"s3_bucket"`
	S3Key      string          `db:"s3_key" json:"s3_key"`
	TotalPages int             `db:"total_pages" json:"total_pages"`
	Status     ClaimStatus     `db:"status" json:"status"`
	Record     json.RawMessage `db:"record" json:"record"`
	ErrorMsg   string          `db:"error_message" json:"error_message,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}
