package onboarding

import (
	"time"

	"github.com/google/uuid"
)

// CompleteInput carries the whole one-shot onboarding request. The
// dispatch policy pointers default to enabled when omitted.
type CompleteInput struct {
	UserID           uuid.UUID
	CompanyName      string
	Timezone         string
	WorkdayStart     string
	WorkdayEnd       string
	AutoAssign       *bool
	IntakeMethod     string
	CollectPTE       *bool
	CollectWindow    *bool
	AfterHoursOnCall bool
	OnCallRotation   string
	OnCallPhone      string
	AdminAccount     *AdminAccountInput
	Properties       []PropertyInput
	Technicians      []TechnicianInput
	Vendors          []VendorInput
}

// AdminAccountInput describes an optional extra admin user created or
// linked during onboarding
type AdminAccountInput struct {
	Email    string
	Password string
	FullName string
}

// PropertyInput describes a property created during onboarding
type PropertyInput struct {
	Name      string
	Address   string
	City      string
	State     string
	Zip       string
	UnitCount int
	Notes     string
}

// TechnicianInput describes a technician created during onboarding.
// DefaultProperty may be a property UUID or the name of a property
// created in the same request.
type TechnicianInput struct {
	FullName        string
	Phone           string
	Email           string
	Trade           string
	ShiftStart      string
	ShiftEnd        string
	MeritPercent    *int
	DefaultProperty string
}

// VendorInput describes an emergency vendor created during onboarding
type VendorInput struct {
	Name     string
	Category string
	Phone    string
	Email    string
}

// CompleteResult summarizes what onboarding created
type CompleteResult struct {
	CompanyID          uuid.UUID
	PropertiesCreated  int
	TechniciansCreated int
	VendorsCreated     int
	AdminCreated       bool
}

// StatusInput identifies whose onboarding state to report
type StatusInput struct {
	UserID uuid.UUID
}

// StatusResult describes the current onboarding state
type StatusResult struct {
	CompanyID        *uuid.UUID
	CompanyName      string
	Timezone         string
	TimezoneLabel    string
	WorkdayStart     string
	WorkdayEnd       string
	AutoAssign       bool
	IntakeMethod     string
	CollectPTE       bool
	CollectWindow    bool
	AfterHoursOnCall bool
	OnCallRotation   string
	OnCallPhone      string
	PropertyCount    int64
	TechnicianCount  int64
	VendorCount      int64
	Properties       []PropertySummary
	Technicians      []TechnicianSummary
	Vendors          []VendorSummary
	Completed        bool
	CompletedAt      *time.Time
}

// PropertySummary is a property line in the onboarding status view
type PropertySummary struct {
	ID        uuid.UUID
	Name      string
	Address   string
	UnitCount int
}

// TechnicianSummary is a technician line in the onboarding status view.
// DefaultPropertyName is joined from the property when one is set.
type TechnicianSummary struct {
	ID                  uuid.UUID
	FullName            string
	Trade               string
	DefaultPropertyName string
}

// VendorSummary is an emergency vendor line in the onboarding status view
type VendorSummary struct {
	ID       uuid.UUID
	Name     string
	Category string
	Phone    string
}
