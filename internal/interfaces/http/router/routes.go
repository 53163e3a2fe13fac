package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dispatchiq/backend/internal/interfaces/http/handler"
)

// Handlers bundles the API handlers for route registration
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Onboarding *handler.OnboardingHandler
	Catalog    *handler.CatalogHandler
	Property   *handler.PropertyHandler
	Workforce  *handler.WorkforceHandler
	WorkOrder  *handler.WorkOrderHandler
	Compliance *handler.ComplianceHandler
	Wallet     *handler.WalletHandler
	System     *handler.SystemHandler
}

// AuthRoutes builds the authentication route group. The extra
// middleware (typically a stricter rate limiter) guards the
// credential endpoints.
func AuthRoutes(h *handler.AuthHandler, middleware ...gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup("auth", "/auth").
		Use(middleware...).
		POST("/signup", h.Signup).
		POST("/signin", h.Signin).
		POST("/refresh", h.Refresh).
		POST("/signout", h.Signout).
		POST("/verify-email", h.VerifyEmail).
		POST("/resend-verification", h.ResendVerification).
		PUT("/password", h.ChangePassword).
		GET("/me", h.Me)
}

// UserRoutes builds the company user administration route group
func UserRoutes(h *handler.UserHandler) *DomainGroup {
	return NewDomainGroup("users", "/users").
		GET("", h.List).
		GET("/:id", h.Get).
		PUT("/:id", h.Update).
		POST("/:id/deactivate", h.Deactivate)
}

// OnboardingRoutes builds the onboarding route group
func OnboardingRoutes(h *handler.OnboardingHandler) *DomainGroup {
	return NewDomainGroup("onboarding", "/onboarding").
		POST("/complete", h.Complete).
		GET("/status", h.Status)
}

// CatalogRoutes builds the service catalog route group
func CatalogRoutes(h *handler.CatalogHandler) *DomainGroup {
	return NewDomainGroup("catalog", "/catalog").
		POST("/categories", h.CreateCategory).
		GET("/categories", h.ListCategories).
		GET("/categories/:id", h.GetCategory).
		PUT("/categories/:id", h.UpdateCategory).
		DELETE("/categories/:id", h.DeleteCategory).
		POST("/service-types", h.CreateServiceType).
		GET("/service-types", h.ListServiceTypes).
		GET("/service-types/:id", h.GetServiceType).
		PUT("/service-types/:id", h.UpdateServiceType).
		DELETE("/service-types/:id", h.DeleteServiceType)
}

// PropertyRoutes builds the property and unit route group
func PropertyRoutes(h *handler.PropertyHandler) *DomainGroup {
	return NewDomainGroup("properties", "/properties").
		POST("", h.CreateProperty).
		GET("", h.ListProperties).
		GET("/:id", h.GetProperty).
		PUT("/:id", h.UpdateProperty).
		DELETE("/:id", h.DeleteProperty).
		PUT("/:id/units", h.UpsertUnit).
		GET("/:id/units", h.ListUnits).
		DELETE("/:id/units/:unitId", h.DeleteUnit)
}

// VendorRoutes builds the emergency vendor route group
func VendorRoutes(h *handler.PropertyHandler) *DomainGroup {
	return NewDomainGroup("vendors", "/vendors").
		POST("", h.CreateVendor).
		GET("", h.ListVendors).
		GET("/:id", h.GetVendor).
		PUT("/:id", h.UpdateVendor).
		DELETE("/:id", h.DeleteVendor)
}

// WorkforceRoutes builds the technician route group
func WorkforceRoutes(h *handler.WorkforceHandler) *DomainGroup {
	return NewDomainGroup("technicians", "/technicians").
		POST("", h.CreateTechnician).
		GET("", h.ListTechnicians).
		GET("/:id", h.GetTechnician).
		PUT("/:id", h.UpdateTechnician).
		POST("/:id/availability", h.SetAvailability).
		DELETE("/:id", h.DeleteTechnician)
}

// WorkOrderRoutes builds the work order and job evidence route group
func WorkOrderRoutes(h *handler.WorkOrderHandler) *DomainGroup {
	return NewDomainGroup("work-orders", "/work-orders").
		POST("", h.Create).
		GET("", h.List).
		GET("/options", h.Options).
		GET("/:id", h.Get).
		PUT("/:id", h.Update).
		POST("/:id/assign", h.Assign).
		POST("/:id/start", h.Start).
		POST("/:id/complete", h.Complete).
		POST("/:id/cancel", h.Cancel).
		POST("/:id/evidence", h.AttachEvidence).
		GET("/:id/evidence", h.ListEvidence).
		GET("/evidence/:evidenceId/download-url", h.EvidenceDownloadURL)
}

// ComplianceRoutes builds the compliance document route group
func ComplianceRoutes(h *handler.ComplianceHandler) *DomainGroup {
	return NewDomainGroup("compliance", "/compliance").
		POST("/documents", h.Upload).
		GET("/documents", h.List).
		GET("/documents/expiring-soon", h.ExpiringSoon).
		GET("/documents/:id", h.Get).
		POST("/documents/:id/approve", h.Approve).
		POST("/documents/:id/reject", h.Reject).
		GET("/documents/:id/download-url", h.DownloadURL).
		DELETE("/documents/:id", h.Delete)
}

// WalletRoutes builds the technician wallet route group
func WalletRoutes(h *handler.WalletHandler) *DomainGroup {
	return NewDomainGroup("wallets", "/wallets").
		GET("/:technicianId", h.GetAccount).
		POST("/:technicianId/credit", h.Credit).
		POST("/:technicianId/debit", h.Debit).
		POST("/:technicianId/payout", h.RequestPayout).
		GET("/:technicianId/statement", h.Statement).
		POST("/:technicianId/payout-methods", h.CreatePayoutMethod).
		GET("/:technicianId/payout-methods", h.ListPayoutMethods)
}

// PayoutMethodRoutes builds the payout method management route group
func PayoutMethodRoutes(h *handler.WalletHandler) *DomainGroup {
	return NewDomainGroup("payout-methods", "/payout-methods").
		POST("/:methodId/default", h.SetDefaultPayoutMethod).
		DELETE("/:methodId", h.DeletePayoutMethod)
}

// SystemRoutes builds the system route group
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("system", "/system").
		GET("/ping", h.Ping).
		GET("/info", h.Info)
}

// Setup registers every API route group on the router. The
// authMiddleware slice guards the auth group's credential endpoints.
func Setup(r *Router, h Handlers, authMiddleware ...gin.HandlerFunc) {
	r.Register(
		AuthRoutes(h.Auth, authMiddleware...),
		UserRoutes(h.User),
		OnboardingRoutes(h.Onboarding),
		CatalogRoutes(h.Catalog),
		PropertyRoutes(h.Property),
		VendorRoutes(h.Property),
		WorkforceRoutes(h.Workforce),
		WorkOrderRoutes(h.WorkOrder),
		ComplianceRoutes(h.Compliance),
		WalletRoutes(h.Wallet),
		PayoutMethodRoutes(h.Wallet),
		SystemRoutes(h.System),
	).Setup()
}
