package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchiq/backend/internal/application/catalog"
	"github.com/dispatchiq/backend/internal/interfaces/http/dto"
)

// CatalogHandler handles service catalog endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalog.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateCategoryRequest is the request body for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateCategoryRequest is the request body for updating a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Active      *bool  `json:"active"`
}

// ListCategoriesRequest holds query filters for listing categories
type ListCategoriesRequest struct {
	dto.ListRequest
	Active *bool `form:"active"`
}

// CreateServiceTypeRequest is the request body for creating a service type
type CreateServiceTypeRequest struct {
	CategoryID  string `json:"category_id" binding:"required,uuid"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
	BaseRate    string `json:"base_rate" binding:"required"`
	Emergency   bool   `json:"emergency"`
}

// UpdateServiceTypeRequest is the request body for updating a service type
type UpdateServiceTypeRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
	BaseRate    string `json:"base_rate" binding:"required"`
	Emergency   bool   `json:"emergency"`
	Active      *bool  `json:"active"`
}

// ListServiceTypesRequest holds query filters for listing service types
type ListServiceTypesRequest struct {
	dto.ListRequest
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Active     *bool  `form:"active"`
	Emergency  *bool  `form:"emergency"`
}

// CreateCategory creates a service category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.catalogService.CreateCategory(c.Request.Context(), catalog.CreateCategoryInput{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toCategoryResponse(*info))
}

// GetCategory retrieves a service category by ID
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	categoryID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	info, err := h.catalogService.GetCategory(c.Request.Context(), companyID, categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCategoryResponse(*info))
}

// ListCategories lists service categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req ListCategoriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.catalogService.ListCategories(c.Request.Context(), catalog.ListCategoriesInput{
		CompanyID: companyID,
		Keyword:   req.Keyword,
		Active:    req.Active,
		Filter:    parseFilter(req.ListRequest),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toCategoryResponses(result.Items),
		result.Total, result.Page, result.PageSize, result.TotalPages)
}

// UpdateCategory updates a service category
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	categoryID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.catalogService.UpdateCategory(c.Request.Context(), catalog.UpdateCategoryInput{
		CompanyID:   companyID,
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCategoryResponse(*info))
}

// DeleteCategory deletes a service category without service types
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	categoryID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), companyID, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateServiceType creates a service type under a category
func (h *CatalogHandler) CreateServiceType(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req CreateServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}
	baseRate, err := decimal.NewFromString(req.BaseRate)
	if err != nil {
		h.BadRequest(c, "Invalid base rate format")
		return
	}

	info, err := h.catalogService.CreateServiceType(c.Request.Context(), catalog.CreateServiceTypeInput{
		CompanyID:   companyID,
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		BaseRate:    baseRate,
		Emergency:   req.Emergency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toServiceTypeResponse(*info))
}

// GetServiceType retrieves a service type by ID
func (h *CatalogHandler) GetServiceType(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	serviceTypeID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid service type ID format")
		return
	}

	info, err := h.catalogService.GetServiceType(c.Request.Context(), companyID, serviceTypeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toServiceTypeResponse(*info))
}

// ListServiceTypes lists service types
func (h *CatalogHandler) ListServiceTypes(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req ListServiceTypesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := catalog.ListServiceTypesInput{
		CompanyID: companyID,
		Keyword:   req.Keyword,
		Active:    req.Active,
		Emergency: req.Emergency,
		Filter:    parseFilter(req.ListRequest),
	}
	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID format")
			return
		}
		input.CategoryID = &categoryID
	}

	result, err := h.catalogService.ListServiceTypes(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toServiceTypeResponses(result.Items),
		result.Total, result.Page, result.PageSize, result.TotalPages)
}

// UpdateServiceType updates a service type
func (h *CatalogHandler) UpdateServiceType(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	serviceTypeID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid service type ID format")
		return
	}

	var req UpdateServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	baseRate, err := decimal.NewFromString(req.BaseRate)
	if err != nil {
		h.BadRequest(c, "Invalid base rate format")
		return
	}

	info, err := h.catalogService.UpdateServiceType(c.Request.Context(), catalog.UpdateServiceTypeInput{
		CompanyID:     companyID,
		ServiceTypeID: serviceTypeID,
		Name:          req.Name,
		Description:   req.Description,
		BaseRate:      baseRate,
		Emergency:     req.Emergency,
		Active:        req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toServiceTypeResponse(*info))
}

// DeleteServiceType deletes a service type
func (h *CatalogHandler) DeleteServiceType(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	serviceTypeID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid service type ID format")
		return
	}

	if err := h.catalogService.DeleteServiceType(c.Request.Context(), companyID, serviceTypeID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
