package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"claimproc/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Claim ID",
	"Status",
	"File Name",
	"Total Pages",
	"Patient Name",
	"Date of Birth",
	"Policy Number",
	"Member ID",
	"Insurance Provider",
	"Identity Confidence",
	"Diagnosis",
	"Admission Date",
	"Discharge Date",
	"Treating Physician",
	"Hospital Name",
	"Discharge Confidence",
	"Line Item Count",
	"Calculated Total",
	"Verified Total",
	"Total Mismatch",
	"Billing Confidence",
	"Classified Types",
	"Processed At",
	"Created At",
}

// Writer wraps csv.Writer for exporting claims as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteClaims converts a batch of claims to CSV rows and writes them.
func (w *Writer) WriteClaims(claims []domain.Claim) error {
	for i := range claims {
		row := claimToRow(&claims[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// claimToRow converts a single claim to a string slice matching columns.
// If the claim is not completed or its record JSON is invalid, metadata
// columns are filled and record columns are left empty.
func claimToRow(claim *domain.Claim) []string {
	row := make([]string, len(columns))

	row[0] = claim.ClaimID
	row[1] = string(claim.Status)
	row[2] = claim.FileName
	row[3] = strconv.Itoa(claim.TotalPages)
	row[23] = claim.CreatedAt.Format(time.RFC3339)

	if claim.Status != domain.ClaimStatusCompleted || len(claim.Record) == 0 {
		return row
	}

	var rec domain.ClaimRecord
	if err := json.Unmarshal(claim.Record, &rec); err != nil {
		return row
	}

	row[4] = derefOrEmpty(rec.IdentityInfo.PatientName)
	row[5] = derefOrEmpty(rec.IdentityInfo.DateOfBirth)
	row[6] = derefOrEmpty(rec.IdentityInfo.PolicyNumber)
	row[7] = derefOrEmpty(rec.IdentityInfo.MemberID)
	row[8] = derefOrEmpty(rec.IdentityInfo.InsuranceProvider)
	row[9] = string(rec.IdentityInfo.Confidence)
	row[10] = derefOrEmpty(rec.DischargeSummary.Diagnosis)
	row[11] = derefOrEmpty(rec.DischargeSummary.AdmissionDate)
	row[12] = derefOrEmpty(rec.DischargeSummary.DischargeDate)
	row[13] = derefOrEmpty(rec.DischargeSummary.TreatingPhysician)
	row[14] = derefOrEmpty(rec.DischargeSummary.HospitalName)
	row[15] = string(rec.DischargeSummary.Confidence)
	row[16] = strconv.Itoa(len(rec.BillingDetails.Items))
	row[17] = formatMoney(rec.BillingDetails.CalculatedTotal)
	row[18] = formatMoney(rec.BillingDetails.VerifiedTotal)
	row[19] = formatBool(rec.BillingDetails.TotalMismatch)
	row[20] = string(rec.BillingDetails.Confidence)
	row[21] = strings.Join(rec.ProcessingMetadata.ClassifiedTypes, "; ")
	row[22] = rec.ProcessingMetadata.Timestamp.Format(time.RFC3339)

	return row
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
