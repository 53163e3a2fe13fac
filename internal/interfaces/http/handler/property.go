package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dispatchiq/backend/internal/application/property"
	"github.com/dispatchiq/backend/internal/interfaces/http/dto"
)

// PropertyHandler handles property, unit and vendor endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *property.Service
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *property.Service) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// PropertyRequest is the request body for creating or updating a property
type PropertyRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=200"`
	Address   string `json:"address" binding:"max=500"`
	City      string `json:"city" binding:"max=100"`
	State     string `json:"state" binding:"max=100"`
	Zip       string `json:"zip" binding:"max=20"`
	UnitCount int    `json:"unit_count" binding:"omitempty,min=0"`
	Notes     string `json:"notes" binding:"max=2000"`
}

// UpsertUnitRequest is the request body for creating or updating a unit
// by label
type UpsertUnitRequest struct {
	Label      string `json:"label" binding:"required,min=1,max=50"`
	Occupied   bool   `json:"occupied"`
	TenantName string `json:"tenant_name" binding:"max=200"`
}

// VendorRequest is the request body for creating an emergency vendor
type VendorRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Category string `json:"category" binding:"required,max=100"`
	Phone    string `json:"phone" binding:"required,max=50"`
	Email    string `json:"email" binding:"omitempty,email,max=320"`
	Notes    string `json:"notes" binding:"max=2000"`
}

// UpdateVendorRequest is the request body for updating an emergency vendor
type UpdateVendorRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Category string `json:"category" binding:"required,max=100"`
	Phone    string `json:"phone" binding:"required,max=50"`
	Email    string `json:"email" binding:"omitempty,email,max=320"`
	Notes    string `json:"notes" binding:"max=2000"`
	Active   *bool  `json:"active"`
}

// ListVendorsRequest holds query filters for listing vendors
type ListVendorsRequest struct {
	dto.ListRequest
	Category string `form:"category"`
	Active   *bool  `form:"active"`
}

// CreateProperty creates a property
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.propertyService.CreateProperty(c.Request.Context(), property.CreatePropertyInput{
		CompanyID: companyID,
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
		UnitCount: req.UnitCount,
		Notes:     req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPropertyResponse(*info))
}

// GetProperty retrieves a property by ID
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	propertyID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	info, err := h.propertyService.GetProperty(c.Request.Context(), companyID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPropertyResponse(*info))
}

// ListProperties lists properties
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.propertyService.ListProperties(c.Request.Context(), property.ListPropertiesInput{
		CompanyID: companyID,
		Keyword:   req.Keyword,
		Filter:    parseFilter(req),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toPropertyResponses(result.Items),
		result.Total, result.Page, result.PageSize, result.TotalPages)
}

// UpdateProperty updates a property
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	propertyID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.propertyService.UpdateProperty(c.Request.Context(), property.UpdatePropertyInput{
		CompanyID:  companyID,
		PropertyID: propertyID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		Zip:        req.Zip,
		UnitCount:  req.UnitCount,
		Notes:      req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPropertyResponse(*info))
}

// DeleteProperty deletes a property
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	propertyID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	if err := h.propertyService.DeleteProperty(c.Request.Context(), companyID, propertyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// UpsertUnit creates or updates a unit by label within a property
func (h *PropertyHandler) UpsertUnit(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	propertyID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req UpsertUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.propertyService.UpsertUnit(c.Request.Context(), property.UpsertUnitInput{
		CompanyID:  companyID,
		PropertyID: propertyID,
		Label:      req.Label,
		Occupied:   req.Occupied,
		TenantName: req.TenantName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUnitResponse(*info))
}

// ListUnits lists a property's units
func (h *PropertyHandler) ListUnits(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	propertyID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	units, err := h.propertyService.ListUnits(c.Request.Context(), companyID, propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUnitResponses(units))
}

// DeleteUnit removes a unit from a property
func (h *PropertyHandler) DeleteUnit(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	propertyID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid property ID format")
		return
	}
	unitID, ok := parseUUIDParam(c, "unitId")
	if !ok {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	if err := h.propertyService.DeleteUnit(c.Request.Context(), companyID, propertyID, unitID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateVendor creates an emergency vendor
func (h *PropertyHandler) CreateVendor(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.propertyService.CreateVendor(c.Request.Context(), property.CreateVendorInput{
		CompanyID: companyID,
		Name:      req.Name,
		Category:  req.Category,
		Phone:     req.Phone,
		Email:     req.Email,
		Notes:     req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toVendorResponse(*info))
}

// GetVendor retrieves an emergency vendor by ID
func (h *PropertyHandler) GetVendor(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	vendorID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	info, err := h.propertyService.GetVendor(c.Request.Context(), companyID, vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toVendorResponse(*info))
}

// ListVendors lists emergency vendors
func (h *PropertyHandler) ListVendors(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req ListVendorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.propertyService.ListVendors(c.Request.Context(), property.ListVendorsInput{
		CompanyID: companyID,
		Category:  req.Category,
		Active:    req.Active,
		Filter:    parseFilter(req.ListRequest),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toVendorResponses(result.Items),
		result.Total, result.Page, result.PageSize, result.TotalPages)
}

// UpdateVendor updates an emergency vendor
func (h *PropertyHandler) UpdateVendor(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	vendorID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	var req UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.propertyService.UpdateVendor(c.Request.Context(), property.UpdateVendorInput{
		CompanyID: companyID,
		VendorID:  vendorID,
		Name:      req.Name,
		Category:  req.Category,
		Phone:     req.Phone,
		Email:     req.Email,
		Notes:     req.Notes,
		Active:    req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toVendorResponse(*info))
}

// DeleteVendor deletes an emergency vendor
func (h *PropertyHandler) DeleteVendor(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	vendorID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid vendor ID format")
		return
	}

	if err := h.propertyService.DeleteVendor(c.Request.Context(), companyID, vendorID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
