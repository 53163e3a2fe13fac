package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/application/workforce"
	"github.com/dispatchiq/backend/internal/interfaces/http/dto"
)

// WorkforceHandler handles technician endpoints
type WorkforceHandler struct {
	BaseHandler
	workforceService *workforce.Service
}

// NewWorkforceHandler creates a new WorkforceHandler
func NewWorkforceHandler(workforceService *workforce.Service) *WorkforceHandler {
	return &WorkforceHandler{workforceService: workforceService}
}

// TechnicianResponse is the technician view returned by the API
type TechnicianResponse struct {
	ID                string  `json:"id"`
	FullName          string  `json:"full_name"`
	Phone             string  `json:"phone"`
	Email             string  `json:"email"`
	Trade             string  `json:"trade"`
	ShiftStart        string  `json:"shift_start"`
	ShiftEnd          string  `json:"shift_end"`
	MeritPercent      int     `json:"merit_percent"`
	Availability      string  `json:"availability"`
	DefaultPropertyID *string `json:"default_property_id"`
	Active            bool    `json:"active"`
}

func toTechnicianResponse(info workforce.TechnicianInfo) TechnicianResponse {
	resp := TechnicianResponse{
		ID:           info.ID.String(),
		FullName:     info.FullName,
		Phone:        info.Phone,
		Email:        info.Email,
		Trade:        info.Trade,
		ShiftStart:   info.ShiftStart,
		ShiftEnd:     info.ShiftEnd,
		MeritPercent: info.MeritPercent,
		Availability: info.Availability,
		Active:       info.Active,
	}
	if info.DefaultPropertyID != nil {
		propertyID := info.DefaultPropertyID.String()
		resp.DefaultPropertyID = &propertyID
	}
	return resp
}

func toTechnicianResponses(infos []workforce.TechnicianInfo) []TechnicianResponse {
	out := make([]TechnicianResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, toTechnicianResponse(info))
	}
	return out
}

// CreateTechnicianRequest is the request body for creating a technician
type CreateTechnicianRequest struct {
	FullName        string `json:"full_name" binding:"required,min=1,max=200"`
	Phone           string `json:"phone" binding:"required,max=50"`
	Email           string `json:"email" binding:"omitempty,email,max=320"`
	Trade           string `json:"trade" binding:"required,max=100"`
	ShiftStart      string `json:"shift_start" binding:"omitempty,timeofday"`
	ShiftEnd        string `json:"shift_end" binding:"omitempty,timeofday"`
	MeritPercent    *int   `json:"merit_percent"`
	DefaultProperty string `json:"default_property_id" binding:"omitempty,uuid"`
}

// UpdateTechnicianRequest is the request body for updating a technician
type UpdateTechnicianRequest struct {
	FullName        string `json:"full_name" binding:"required,min=1,max=200"`
	Phone           string `json:"phone" binding:"required,max=50"`
	Email           string `json:"email" binding:"omitempty,email,max=320"`
	Trade           string `json:"trade" binding:"required,max=100"`
	ShiftStart      string `json:"shift_start" binding:"omitempty,timeofday"`
	ShiftEnd        string `json:"shift_end" binding:"omitempty,timeofday"`
	MeritPercent    *int   `json:"merit_percent"`
	DefaultProperty string `json:"default_property_id" binding:"omitempty,uuid"`
	ClearDefault    bool   `json:"clear_default_property"`
	Active          *bool  `json:"active"`
}

// SetAvailabilityRequest is the request body for an availability transition
type SetAvailabilityRequest struct {
	Availability string `json:"availability" binding:"required,oneof=available on_job off_shift unavailable"`
}

// ListTechniciansRequest holds query filters for listing technicians
type ListTechniciansRequest struct {
	dto.ListRequest
	Availability string `form:"availability" binding:"omitempty,oneof=available on_job off_shift unavailable"`
	Active       *bool  `form:"active"`
}

// CreateTechnician creates a technician
func (h *WorkforceHandler) CreateTechnician(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req CreateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := workforce.CreateTechnicianInput{
		CompanyID:    companyID,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Email:        req.Email,
		Trade:        req.Trade,
		ShiftStart:   req.ShiftStart,
		ShiftEnd:     req.ShiftEnd,
		MeritPercent: req.MeritPercent,
	}
	if req.DefaultProperty != "" {
		propertyID, err := uuid.Parse(req.DefaultProperty)
		if err != nil {
			h.BadRequest(c, "Invalid default property ID format")
			return
		}
		input.DefaultProperty = &propertyID
	}

	info, err := h.workforceService.CreateTechnician(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toTechnicianResponse(*info))
}

// GetTechnician retrieves a technician by ID
func (h *WorkforceHandler) GetTechnician(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	technicianID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}

	info, err := h.workforceService.GetTechnician(c.Request.Context(), companyID, technicianID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTechnicianResponse(*info))
}

// ListTechnicians lists technicians
func (h *WorkforceHandler) ListTechnicians(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req ListTechniciansRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.workforceService.ListTechnicians(c.Request.Context(), workforce.ListTechniciansInput{
		CompanyID:    companyID,
		Keyword:      req.Keyword,
		Availability: req.Availability,
		Active:       req.Active,
		Filter:       parseFilter(req.ListRequest),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toTechnicianResponses(result.Items),
		result.Total, result.Page, result.PageSize, result.TotalPages)
}

// UpdateTechnician updates a technician
func (h *WorkforceHandler) UpdateTechnician(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	technicianID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}

	var req UpdateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := workforce.UpdateTechnicianInput{
		CompanyID:    companyID,
		TechnicianID: technicianID,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Email:        req.Email,
		Trade:        req.Trade,
		ShiftStart:   req.ShiftStart,
		ShiftEnd:     req.ShiftEnd,
		MeritPercent: req.MeritPercent,
		ClearDefault: req.ClearDefault,
		Active:       req.Active,
	}
	if req.DefaultProperty != "" {
		propertyID, err := uuid.Parse(req.DefaultProperty)
		if err != nil {
			h.BadRequest(c, "Invalid default property ID format")
			return
		}
		input.DefaultProperty = &propertyID
	}

	info, err := h.workforceService.UpdateTechnician(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTechnicianResponse(*info))
}

// SetAvailability transitions a technician's availability
func (h *WorkforceHandler) SetAvailability(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	technicianID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}

	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.workforceService.SetAvailability(c.Request.Context(), workforce.SetAvailabilityInput{
		CompanyID:    companyID,
		TechnicianID: technicianID,
		Availability: req.Availability,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTechnicianResponse(*info))
}

// DeleteTechnician deactivates a technician
func (h *WorkforceHandler) DeleteTechnician(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	technicianID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid technician ID format")
		return
	}

	if err := h.workforceService.DeleteTechnician(c.Request.Context(), companyID, technicianID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
