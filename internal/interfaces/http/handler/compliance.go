package handler

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/application/compliance"
	"github.com/dispatchiq/backend/internal/interfaces/http/dto"
)

// ComplianceHandler handles compliance document endpoints
type ComplianceHandler struct {
	BaseHandler
	complianceService *compliance.Service
}

// NewComplianceHandler creates a new ComplianceHandler
func NewComplianceHandler(complianceService *compliance.Service) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService}
}

// DocumentResponse is the compliance document view returned by the API
type DocumentResponse struct {
	ID           string     `json:"id"`
	TechnicianID string     `json:"technician_id"`
	Type         string     `json:"type"`
	FileName     string     `json:"file_name"`
	ContentType  string     `json:"content_type"`
	SizeBytes    int64      `json:"size_bytes"`
	Status       string     `json:"status"`
	ExpiresAt    *time.Time `json:"expires_at"`
	ReviewedBy   *string    `json:"reviewed_by"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	ReviewNote   string     `json:"review_note"`
	Expired      bool       `json:"expired"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toDocumentResponse(info compliance.DocumentInfo) DocumentResponse {
	resp := DocumentResponse{
		ID:           info.ID.String(),
		TechnicianID: info.TechnicianID.String(),
		Type:         info.Type,
		FileName:     info.FileName,
		ContentType:  info.ContentType,
		SizeBytes:    info.SizeBytes,
		Status:       info.Status,
		ExpiresAt:    info.ExpiresAt,
		ReviewedAt:   info.ReviewedAt,
		ReviewNote:   info.ReviewNote,
		Expired:      info.Expired,
		CreatedAt:    info.CreatedAt,
	}
	if info.ReviewedBy != nil {
		reviewedBy := info.ReviewedBy.String()
		resp.ReviewedBy = &reviewedBy
	}
	return resp
}

func toDocumentResponses(infos []compliance.DocumentInfo) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, toDocumentResponse(info))
	}
	return out
}

// ReviewDocumentRequest is the request body for approving or rejecting
// a document
type ReviewDocumentRequest struct {
	Note string `json:"note" binding:"max=2000"`
}

// ListDocumentsRequest holds query filters for listing documents
type ListDocumentsRequest struct {
	dto.ListRequest
	TechnicianID string `form:"technician_id" binding:"omitempty,uuid"`
	Type         string `form:"type"`
	Status       string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// ExpiringSoonRequest holds query parameters for the expiring-soon query
type ExpiringSoonRequest struct {
	dto.ListRequest
	WithinDays int `form:"within_days" binding:"omitempty,min=1,max=365"`
}

// Upload stores a compliance document as multipart form data. Form
// fields: file (required), technician_id (required), type (required),
// expires_at (RFC 3339, optional).
func (h *ComplianceHandler) Upload(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	technicianID, err := uuid.Parse(c.PostForm("technician_id"))
	if err != nil {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Failed to read file upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Failed to read file upload")
		return
	}

	input := compliance.UploadInput{
		CompanyID:    companyID,
		TechnicianID: technicianID,
		Type:         c.PostForm("type"),
		FileName:     fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Data:         data,
	}
	if expiresAtStr := c.PostForm("expires_at"); expiresAtStr != "" {
		expiresAt, err := time.Parse(time.RFC3339, expiresAtStr)
		if err != nil {
			h.BadRequest(c, "Invalid expires_at format, expected RFC 3339")
			return
		}
		input.ExpiresAt = &expiresAt
	}

	info, err := h.complianceService.Upload(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toDocumentResponse(*info))
}

// Get retrieves a compliance document by ID
func (h *ComplianceHandler) Get(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	documentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	info, err := h.complianceService.Get(c.Request.Context(), companyID, documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toDocumentResponse(*info))
}

// List lists compliance documents
func (h *ComplianceHandler) List(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req ListDocumentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := compliance.ListInput{
		CompanyID: companyID,
		Type:      req.Type,
		Status:    req.Status,
		Filter:    parseFilter(req.ListRequest),
	}
	if req.TechnicianID != "" {
		technicianID, err := uuid.Parse(req.TechnicianID)
		if err != nil {
			h.BadRequest(c, "Invalid technician ID format")
			return
		}
		input.TechnicianID = &technicianID
	}

	result, err := h.complianceService.List(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toDocumentResponses(result.Items),
		result.Total, result.Page, result.PageSize, result.TotalPages)
}

// ExpiringSoon lists documents expiring within the given window,
// defaulting to 30 days
func (h *ComplianceHandler) ExpiringSoon(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req ExpiringSoonRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	withinDays := req.WithinDays
	if withinDays <= 0 {
		withinDays = 30
	}

	result, err := h.complianceService.ExpiringSoon(c.Request.Context(), compliance.ExpiringSoonInput{
		CompanyID: companyID,
		Within:    time.Duration(withinDays) * 24 * time.Hour,
		Filter:    parseFilter(req.ListRequest),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toDocumentResponses(result.Items),
		result.Total, result.Page, result.PageSize, result.TotalPages)
}

// Approve approves a pending document
func (h *ComplianceHandler) Approve(c *gin.Context) {
	h.review(c, h.complianceService.Approve)
}

// Reject rejects a pending document
func (h *ComplianceHandler) Reject(c *gin.Context) {
	h.review(c, h.complianceService.Reject)
}

func (h *ComplianceHandler) review(c *gin.Context, op func(context.Context, compliance.ReviewInput) (*compliance.DocumentInfo, error)) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}
	reviewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	documentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req ReviewDocumentRequest
	// Body is optional; a review without a note is allowed
	_ = c.ShouldBindJSON(&req)

	info, err := op(c.Request.Context(), compliance.ReviewInput{
		CompanyID:  companyID,
		DocumentID: documentID,
		ReviewerID: reviewerID,
		Note:       req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toDocumentResponse(*info))
}

// DownloadURL returns a presigned download URL for a document
func (h *ComplianceHandler) DownloadURL(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	documentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	result, err := h.complianceService.DownloadURL(c.Request.Context(), companyID, documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DownloadURLResponse{URL: result.URL, ExpiresAt: result.ExpiresAt})
}

// Delete deletes a document and its stored file
func (h *ComplianceHandler) Delete(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	documentID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	if err := h.complianceService.Delete(c.Request.Context(), companyID, documentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
