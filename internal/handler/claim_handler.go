package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"claimproc/internal/domain"
	"claimproc/internal/export"
	"claimproc/internal/service"
)

// ClaimHandler handles claim processing endpoints.
type ClaimHandler struct {
	claimService service.ClaimService
}

// NewClaimHandler creates a new ClaimHandler.
func NewClaimHandler(claimService service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// Process handles POST /api/v1/claims/process
// Accepts a multipart form with claim_id and file fields, runs the full
// classification and extraction pipeline, and returns the claim record.
func (h *ClaimHandler) Process(c *gin.Context) {
	claimID := c.PostForm("claim_id")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	record, err := h.claimService.ProcessClaim(c.Request.Context(), service.ProcessInput{
		ClaimID: claimID,
		File:    file,
		Header:  header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, record)
}

// Reprocess handles POST /api/v1/claims/:claim_id/reprocess
// Re-runs the pipeline against the archived document for an existing claim.
func (h *ClaimHandler) Reprocess(c *gin.Context) {
	claimID := c.Param("claim_id")

	record, err := h.claimService.ReprocessClaim(c.Request.Context(), claimID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, record)
}

// GetByClaimID handles GET /api/v1/claims/:claim_id
func (h *ClaimHandler) GetByClaimID(c *gin.Context) {
	claimID := c.Param("claim_id")

	claim, err := h.claimService.GetByClaimID(c.Request.Context(), claimID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, claim)
}

// GetDownloadURL handles GET /api/v1/claims/:claim_id/download
func (h *ClaimHandler) GetDownloadURL(c *gin.Context) {
	claimID := c.Param("claim_id")

	url, err := h.claimService.GetDownloadURL(c.Request.Context(), claimID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"download_url": url})
}

// List handles GET /api/v1/claims
func (h *ClaimHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	claims, total, err := h.claimService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, claims, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// exportPageSize is the List page size used when collecting claims for export.
const exportPageSize = 500

// Export handles GET /api/v1/claims/export?format=csv|xlsx
// All claims are exported; the listing is paged through until exhausted.
func (h *ClaimHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	var claims []domain.Claim
	for offset := 0; ; {
		page, total, err := h.claimService.List(c.Request.Context(), offset, exportPageSize)
		if err != nil {
			HandleError(c, err)
			return
		}
		claims = append(claims, page...)
		offset += len(page)
		if len(page) == 0 || offset >= total {
			break
		}
	}

	if format == "xlsx" {
		data, err := export.WriteXLSX(claims)
		if err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+export.BuildFilename("claims", "xlsx"))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
		return
	}

	var buf bytes.Buffer
	buf.Write(export.BOM)
	w := export.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteClaims(claims); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+export.BuildFilename("claims", "csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
