package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchiq/backend/internal/application/workorder"
	"github.com/dispatchiq/backend/internal/interfaces/http/dto"
)

// WorkOrderHandler handles work order and job evidence endpoints
type WorkOrderHandler struct {
	BaseHandler
	workOrderService *workorder.Service
}

// NewWorkOrderHandler creates a new WorkOrderHandler
func NewWorkOrderHandler(workOrderService *workorder.Service) *WorkOrderHandler {
	return &WorkOrderHandler{workOrderService: workOrderService}
}

// CreateWorkOrderRequest is the request body for creating a work order.
// The unit may be referenced by ID or upserted by label; at most one of
// the two should be set.
type CreateWorkOrderRequest struct {
	PropertyID      string `json:"property_id" binding:"required,uuid"`
	UnitID          string `json:"unit_id" binding:"omitempty,uuid"`
	UnitLabel       string `json:"unit_label" binding:"max=50"`
	ServiceTypeID   string `json:"service_type_id" binding:"omitempty,uuid"`
	Issue           string `json:"issue" binding:"required,min=3,max=300"`
	Description     string `json:"description" binding:"max=5000"`
	Priority        string `json:"priority" binding:"omitempty,oneof=routine emergency"`
	PTE             bool   `json:"pte"`
	PreferredWindow string `json:"preferred_window" binding:"max=100"`
	TenantName      string `json:"tenant_name" binding:"max=200"`
	TenantPhone     string `json:"tenant_phone" binding:"max=32"`
	TechnicianID    string `json:"technician_id" binding:"omitempty,uuid"`
	PayoutAmount    string `json:"payout_amount"`
	ReportedBy      string `json:"reported_by" binding:"max=200"`
}

// UpdateWorkOrderRequest is the request body for updating a work order.
// The intake detail fields are pointers so that omitting them leaves
// the stored values untouched.
type UpdateWorkOrderRequest struct {
	Issue           string  `json:"issue" binding:"required,min=3,max=300"`
	Description     string  `json:"description" binding:"max=5000"`
	Priority        string  `json:"priority" binding:"omitempty,oneof=routine emergency"`
	PTE             *bool   `json:"pte"`
	PreferredWindow *string `json:"preferred_window" binding:"omitempty,max=100"`
	TenantName      *string `json:"tenant_name" binding:"omitempty,max=200"`
	TenantPhone     *string `json:"tenant_phone" binding:"omitempty,max=32"`
	TechnicianID    string  `json:"technician_id" binding:"omitempty,uuid"`
	PayoutAmount    string  `json:"payout_amount"`
}

// AssignWorkOrderRequest is the request body for assigning a technician
type AssignWorkOrderRequest struct {
	TechnicianID string `json:"technician_id" binding:"required,uuid"`
}

// CancelWorkOrderRequest is the request body for cancelling a work order
type CancelWorkOrderRequest struct {
	Reason string `json:"reason" binding:"max=2000"`
}

// ListWorkOrdersRequest holds query filters for listing work orders
type ListWorkOrdersRequest struct {
	dto.ListRequest
	Status       string `form:"status" binding:"omitempty,oneof=open assigned in_progress completed cancelled"`
	Priority     string `form:"priority" binding:"omitempty,oneof=routine emergency"`
	PropertyID   string `form:"property_id" binding:"omitempty,uuid"`
	TechnicianID string `form:"technician_id" binding:"omitempty,uuid"`
}

func parseOptionalUUID(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalDecimal(value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create creates a work order
func (h *WorkOrderHandler) Create(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}
	unitID, err := parseOptionalUUID(req.UnitID)
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}
	serviceTypeID, err := parseOptionalUUID(req.ServiceTypeID)
	if err != nil {
		h.BadRequest(c, "Invalid service type ID format")
		return
	}
	technicianID, err := parseOptionalUUID(req.TechnicianID)
	if err != nil {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}
	payoutAmount, err := parseOptionalDecimal(req.PayoutAmount)
	if err != nil {
		h.BadRequest(c, "Invalid payout amount format")
		return
	}

	info, err := h.workOrderService.Create(c.Request.Context(), workorder.CreateInput{
		CompanyID:       companyID,
		PropertyID:      propertyID,
		UnitID:          unitID,
		UnitLabel:       req.UnitLabel,
		ServiceTypeID:   serviceTypeID,
		Issue:           req.Issue,
		Description:     req.Description,
		Priority:        req.Priority,
		PTE:             req.PTE,
		PreferredWindow: req.PreferredWindow,
		TenantName:      req.TenantName,
		TenantPhone:     req.TenantPhone,
		TechnicianID:    technicianID,
		PayoutAmount:    payoutAmount,
		ReportedBy:      req.ReportedBy,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toWorkOrderResponse(*info))
}

// Get retrieves a work order by ID
func (h *WorkOrderHandler) Get(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	workOrderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	info, err := h.workOrderService.Get(c.Request.Context(), companyID, workOrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toWorkOrderResponse(*info))
}

// List lists work orders
func (h *WorkOrderHandler) List(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req ListWorkOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	propertyID, err := parseOptionalUUID(req.PropertyID)
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}
	technicianID, err := parseOptionalUUID(req.TechnicianID)
	if err != nil {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}

	result, err := h.workOrderService.List(c.Request.Context(), workorder.ListInput{
		CompanyID:    companyID,
		Status:       req.Status,
		Priority:     req.Priority,
		PropertyID:   propertyID,
		TechnicianID: technicianID,
		Keyword:      req.Keyword,
		Filter:       parseFilter(req.ListRequest),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toWorkOrderResponses(result.Items),
		result.Total, result.Page, result.PageSize, result.TotalPages)
}

// Options returns properties with their units for intake forms
func (h *WorkOrderHandler) Options(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	options, err := h.workOrderService.Options(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPropertyOptionResponses(options))
}

// Update updates an open or assigned work order
func (h *WorkOrderHandler) Update(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	workOrderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	var req UpdateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	technicianID, err := parseOptionalUUID(req.TechnicianID)
	if err != nil {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}
	payoutAmount, err := parseOptionalDecimal(req.PayoutAmount)
	if err != nil {
		h.BadRequest(c, "Invalid payout amount format")
		return
	}

	info, err := h.workOrderService.Update(c.Request.Context(), workorder.UpdateInput{
		CompanyID:       companyID,
		WorkOrderID:     workOrderID,
		Issue:           req.Issue,
		Description:     req.Description,
		Priority:        req.Priority,
		PTE:             req.PTE,
		PreferredWindow: req.PreferredWindow,
		TenantName:      req.TenantName,
		TenantPhone:     req.TenantPhone,
		TechnicianID:    technicianID,
		PayoutAmount:    payoutAmount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toWorkOrderResponse(*info))
}

// Assign assigns a technician to a work order
func (h *WorkOrderHandler) Assign(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	workOrderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	var req AssignWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	technicianID, err := uuid.Parse(req.TechnicianID)
	if err != nil {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}

	info, err := h.workOrderService.Assign(c.Request.Context(), workorder.AssignInput{
		CompanyID:    companyID,
		WorkOrderID:  workOrderID,
		TechnicianID: technicianID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toWorkOrderResponse(*info))
}

// Start moves an assigned work order to in progress
func (h *WorkOrderHandler) Start(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	workOrderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	info, err := h.workOrderService.Start(c.Request.Context(), companyID, workOrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toWorkOrderResponse(*info))
}

// Complete completes an in-progress work order
func (h *WorkOrderHandler) Complete(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	workOrderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	info, err := h.workOrderService.Complete(c.Request.Context(), companyID, workOrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toWorkOrderResponse(*info))
}

// Cancel cancels a work order
func (h *WorkOrderHandler) Cancel(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	workOrderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	var req CancelWorkOrderRequest
	// Body is optional; a cancel without a reason is allowed
	_ = c.ShouldBindJSON(&req)

	info, err := h.workOrderService.Cancel(c.Request.Context(), workorder.CancelInput{
		CompanyID:   companyID,
		WorkOrderID: workOrderID,
		Reason:      req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toWorkOrderResponse(*info))
}

// AttachEvidence uploads a job evidence file as multipart form data.
// Form fields: file (required), kind, caption.
func (h *WorkOrderHandler) AttachEvidence(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	workOrderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid work order ID format")
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

	info, err := h.workOrderService.AttachEvidence(c.Request.Context(), workorder.AttachEvidenceInput{
		CompanyID:   companyID,
		WorkOrderID: workOrderID,
		UploadedBy:  userID,
		Kind:        c.PostForm("kind"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		Caption:     c.PostForm("caption"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toEvidenceResponse(*info))
}

// ListEvidence lists a work order's evidence files
func (h *WorkOrderHandler) ListEvidence(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	workOrderID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	evidence, err := h.workOrderService.ListEvidence(c.Request.Context(), companyID, workOrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toEvidenceResponses(evidence))
}

// EvidenceDownloadURL returns a presigned download URL for an evidence file
func (h *WorkOrderHandler) EvidenceDownloadURL(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	evidenceID, ok := parseUUIDParam(c, "evidenceId")
	if !ok {
		h.BadRequest(c, "Invalid evidence ID format")
		return
	}

	result, err := h.workOrderService.EvidenceDownloadURL(c.Request.Context(), companyID, evidenceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DownloadURLResponse{URL: result.URL, ExpiresAt: result.ExpiresAt})
}
