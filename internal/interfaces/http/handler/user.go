package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dispatchiq/backend/internal/application/identity"
	"github.com/dispatchiq/backend/internal/interfaces/http/dto"
)

// UserHandler handles company user administration endpoints
type UserHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService *identity.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// ListUsersRequest is the query string for listing company users
type ListUsersRequest struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=active inactive locked"`
}

// UpdateUserRequest is the request body for updating a company user
type UpdateUserRequest struct {
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
	Role     string `json:"role" binding:"omitempty,oneof=owner dispatcher technician"`
}

// List returns the company's user accounts
func (h *UserHandler) List(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}

	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.ListUsers(c.Request.Context(), identity.ListUsersInput{
		CompanyID: companyID,
		Keyword:   req.Keyword,
		Status:    req.Status,
		Filter:    parseFilter(req.ListRequest),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]UserResponse, 0, len(result.Items))
	for _, user := range result.Items {
		responses = append(responses, toUserResponse(user))
	}
	h.SuccessWithMeta(c, responses, result.Total, result.Page, result.PageSize, result.TotalPages)
}

// Get returns a single company user
func (h *UserHandler) Get(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.authService.GetUser(c.Request.Context(), identity.GetUserInput{
		CompanyID: companyID,
		UserID:    userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(*result))
}

// Update updates a company user's profile and role
func (h *UserHandler) Update(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.UpdateUser(c.Request.Context(), identity.UpdateUserInput{
		CompanyID: companyID,
		UserID:    userID,
		FullName:  req.FullName,
		Role:      req.Role,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(*result))
}

// Deactivate disables a company user's account
func (h *UserHandler) Deactivate(c *gin.Context) {
	companyID, ok := h.requireCompany(c)
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.DeactivateUser(c.Request.Context(), identity.DeactivateUserInput{
		CompanyID: companyID,
		UserID:    userID,
		ActorID:   actorID,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
