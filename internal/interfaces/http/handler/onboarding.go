package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dispatchiq/backend/internal/application/onboarding"
)

// OnboardingHandler handles the company onboarding endpoints
type OnboardingHandler struct {
	BaseHandler
	onboardingService *onboarding.Service
}

// NewOnboardingHandler creates a new OnboardingHandler
func NewOnboardingHandler(onboardingService *onboarding.Service) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

// OnboardingPropertyRequest describes a property created during onboarding
type OnboardingPropertyRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=200"`
	Address   string `json:"address" binding:"max=500"`
	City      string `json:"city" binding:"max=100"`
	State     string `json:"state" binding:"max=100"`
	Zip       string `json:"zip" binding:"max=20"`
	UnitCount int    `json:"unit_count" binding:"omitempty,min=0"`
	Notes     string `json:"notes" binding:"max=2000"`
}

// OnboardingTechnicianRequest describes a technician created during
// onboarding. DefaultProperty may be a UUID or the name of a property
// from the same request.
type OnboardingTechnicianRequest struct {
	FullName        string `json:"full_name" binding:"required,min=1,max=200"`
	Phone           string `json:"phone" binding:"required,max=50"`
	Email           string `json:"email" binding:"omitempty,email,max=320"`
	Trade           string `json:"trade" binding:"required,max=100"`
	ShiftStart      string `json:"shift_start" binding:"omitempty,timeofday"`
	ShiftEnd        string `json:"shift_end" binding:"omitempty,timeofday"`
	MeritPercent    *int   `json:"merit_percent"`
	DefaultProperty string `json:"default_property" binding:"max=200"`
}

// OnboardingVendorRequest describes an emergency vendor created during
// onboarding
type OnboardingVendorRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Category string `json:"category" binding:"required,max=100"`
	Phone    string `json:"phone" binding:"required,max=50"`
	Email    string `json:"email" binding:"omitempty,email,max=320"`
}

// OnboardingAdminRequest is the optional extra admin account created or
// linked during onboarding
type OnboardingAdminRequest struct {
	Email    string `json:"email" binding:"required,email,max=320"`
	Password string `json:"password" binding:"required,min=8,max=64"`
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
}

// CompleteOnboardingRequest is the one-shot onboarding request body.
// The dispatch policy pointers default to enabled when omitted.
type CompleteOnboardingRequest struct {
	CompanyName      string                        `json:"company_name" binding:"required,min=1,max=200"`
	Timezone         string                        `json:"timezone" binding:"required"`
	WorkdayStart     string                        `json:"workday_start" binding:"required,timeofday"`
	WorkdayEnd       string                        `json:"workday_end" binding:"required,timeofday"`
	AutoAssign       *bool                         `json:"auto_assign"`
	IntakeMethod     string                        `json:"intake_method" binding:"required,oneof=email manual"`
	CollectPTE       *bool                         `json:"collect_pte"`
	CollectWindow    *bool                         `json:"collect_window"`
	AfterHoursOnCall bool                          `json:"after_hours_on_call"`
	OnCallRotation   string                        `json:"on_call_rotation" binding:"omitempty,oneof=weekly custom"`
	OnCallPhone      string                        `json:"on_call_phone" binding:"max=50"`
	AdminAccount     *OnboardingAdminRequest       `json:"admin_account"`
	Properties       []OnboardingPropertyRequest   `json:"properties" binding:"dive"`
	Technicians      []OnboardingTechnicianRequest `json:"technicians" binding:"dive"`
	Vendors          []OnboardingVendorRequest     `json:"vendors" binding:"dive"`
}

// CompleteOnboardingResponse summarizes what onboarding created
type CompleteOnboardingResponse struct {
	CompanyID          string `json:"company_id"`
	PropertiesCreated  int    `json:"properties_created"`
	TechniciansCreated int    `json:"technicians_created"`
	VendorsCreated     int    `json:"vendors_created"`
	AdminCreated       bool   `json:"admin_created"`
}

// OnboardingPropertySummary is a property line in the status view
type OnboardingPropertySummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	UnitCount int    `json:"unit_count"`
}

// OnboardingTechnicianSummary is a technician line in the status view
type OnboardingTechnicianSummary struct {
	ID                  string `json:"id"`
	FullName            string `json:"full_name"`
	Trade               string `json:"trade"`
	DefaultPropertyName string `json:"default_property_name"`
}

// OnboardingVendorSummary is a vendor line in the status view
type OnboardingVendorSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Phone    string `json:"phone"`
}

// OnboardingStatusResponse describes the current onboarding state
type OnboardingStatusResponse struct {
	CompanyID        *string                       `json:"company_id"`
	CompanyName      string                        `json:"company_name"`
	Timezone         string                        `json:"timezone"`
	TimezoneLabel    string                        `json:"timezone_label"`
	WorkdayStart     string                        `json:"workday_start"`
	WorkdayEnd       string                        `json:"workday_end"`
	AutoAssign       bool                          `json:"auto_assign"`
	IntakeMethod     string                        `json:"intake_method"`
	CollectPTE       bool                          `json:"collect_pte"`
	CollectWindow    bool                          `json:"collect_window"`
	AfterHoursOnCall bool                          `json:"after_hours_on_call"`
	OnCallRotation   string                        `json:"on_call_rotation"`
	OnCallPhone      string                        `json:"on_call_phone"`
	PropertyCount    int64                         `json:"property_count"`
	TechnicianCount  int64                         `json:"technician_count"`
	VendorCount      int64                         `json:"vendor_count"`
	Properties       []OnboardingPropertySummary   `json:"properties"`
	Technicians      []OnboardingTechnicianSummary `json:"technicians"`
	Vendors          []OnboardingVendorSummary     `json:"vendors"`
	Completed        bool                          `json:"completed"`
	CompletedAt      *time.Time                    `json:"completed_at"`
}

// Complete runs the one-shot onboarding for the signed in user
func (h *OnboardingHandler) Complete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CompleteOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := onboarding.CompleteInput{
		UserID:           userID,
		CompanyName:      req.CompanyName,
		Timezone:         req.Timezone,
		WorkdayStart:     req.WorkdayStart,
		WorkdayEnd:       req.WorkdayEnd,
		AutoAssign:       req.AutoAssign,
		IntakeMethod:     req.IntakeMethod,
		CollectPTE:       req.CollectPTE,
		CollectWindow:    req.CollectWindow,
		AfterHoursOnCall: req.AfterHoursOnCall,
		OnCallRotation:   req.OnCallRotation,
		OnCallPhone:      req.OnCallPhone,
	}
	if req.AdminAccount != nil {
		input.AdminAccount = &onboarding.AdminAccountInput{
			Email:    req.AdminAccount.Email,
			Password: req.AdminAccount.Password,
			FullName: req.AdminAccount.FullName,
		}
	}
	for _, p := range req.Properties {
		input.Properties = append(input.Properties, onboarding.PropertyInput{
			Name:      p.Name,
			Address:   p.Address,
			City:      p.City,
			State:     p.State,
			Zip:       p.Zip,
			UnitCount: p.UnitCount,
			Notes:     p.Notes,
		})
	}
	for _, t := range req.Technicians {
		input.Technicians = append(input.Technicians, onboarding.TechnicianInput{
			FullName:        t.FullName,
			Phone:           t.Phone,
			Email:           t.Email,
			Trade:           t.Trade,
			ShiftStart:      t.ShiftStart,
			ShiftEnd:        t.ShiftEnd,
			MeritPercent:    t.MeritPercent,
			DefaultProperty: t.DefaultProperty,
		})
	}
	for _, v := range req.Vendors {
		input.Vendors = append(input.Vendors, onboarding.VendorInput{
			Name:     v.Name,
			Category: v.Category,
			Phone:    v.Phone,
			Email:    v.Email,
		})
	}

	result, err := h.onboardingService.Complete(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, CompleteOnboardingResponse{
		CompanyID:          result.CompanyID.String(),
		PropertiesCreated:  result.PropertiesCreated,
		TechniciansCreated: result.TechniciansCreated,
		VendorsCreated:     result.VendorsCreated,
		AdminCreated:       result.AdminCreated,
	})
}

// Status reports the signed in user's onboarding state
func (h *OnboardingHandler) Status(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.onboardingService.Status(c.Request.Context(), onboarding.StatusInput{UserID: userID})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := OnboardingStatusResponse{
		CompanyName:      result.CompanyName,
		Timezone:         result.Timezone,
		TimezoneLabel:    result.TimezoneLabel,
		WorkdayStart:     result.WorkdayStart,
		WorkdayEnd:       result.WorkdayEnd,
		AutoAssign:       result.AutoAssign,
		IntakeMethod:     result.IntakeMethod,
		CollectPTE:       result.CollectPTE,
		CollectWindow:    result.CollectWindow,
		AfterHoursOnCall: result.AfterHoursOnCall,
		OnCallRotation:   result.OnCallRotation,
		OnCallPhone:      result.OnCallPhone,
		PropertyCount:    result.PropertyCount,
		TechnicianCount:  result.TechnicianCount,
		VendorCount:      result.VendorCount,
		Properties:       make([]OnboardingPropertySummary, 0, len(result.Properties)),
		Technicians:      make([]OnboardingTechnicianSummary, 0, len(result.Technicians)),
		Vendors:          make([]OnboardingVendorSummary, 0, len(result.Vendors)),
		Completed:        result.Completed,
		CompletedAt:      result.CompletedAt,
	}
	for _, p := range result.Properties {
		resp.Properties = append(resp.Properties, OnboardingPropertySummary{
			ID:        p.ID.String(),
			Name:      p.Name,
			Address:   p.Address,
			UnitCount: p.UnitCount,
		})
	}
	for _, tech := range result.Technicians {
		resp.Technicians = append(resp.Technicians, OnboardingTechnicianSummary{
			ID:                  tech.ID.String(),
			FullName:            tech.FullName,
			Trade:               tech.Trade,
			DefaultPropertyName: tech.DefaultPropertyName,
		})
	}
	for _, v := range result.Vendors {
		resp.Vendors = append(resp.Vendors, OnboardingVendorSummary{
			ID:       v.ID.String(),
			Name:     v.Name,
			Category: v.Category,
			Phone:    v.Phone,
		})
	}
	if result.CompanyID != nil {
		companyID := result.CompanyID.String()
		resp.CompanyID = &companyID
	}

	h.Success(c, resp)
}
