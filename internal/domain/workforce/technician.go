package workforce

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// Availability represents the current dispatch availability of a technician
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityOnJob       Availability = "on_job"
	AvailabilityOffShift    Availability = "off_shift"
	AvailabilityUnavailable Availability = "unavailable"
)

// ParseAvailability normalizes and validates an availability value.
// An empty value defaults to available.
func ParseAvailability(value string) (Availability, error) {
	switch Availability(strings.ToLower(strings.TrimSpace(value))) {
	case AvailabilityAvailable, "":
		return AvailabilityAvailable, nil
	case AvailabilityOnJob:
		return AvailabilityOnJob, nil
	case AvailabilityOffShift:
		return AvailabilityOffShift, nil
	case AvailabilityUnavailable:
		return AvailabilityUnavailable, nil
	default:
		return "", shared.NewDomainError("INVALID_AVAILABILITY",
			"Availability must be available, on_job, off_shift or unavailable")
	}
}

const (
	// DefaultMeritPercent is the payout scale for a technician with no
	// merit adjustment.
	DefaultMeritPercent = 100
	minMeritPercent     = 0
	maxMeritPercent     = 200
)

// Technician is a field worker who can be assigned to work orders.
// MeritPercent scales the payout credited to the technician's wallet
// when a job completes.
type Technician struct {
	shared.CompanyAggregateRoot
	FullName          string
	Phone             string
	Email             string
	Trade             string
	ShiftStart        string
	ShiftEnd          string
	MeritPercent      int
	Availability      Availability
	DefaultPropertyID *uuid.UUID
	Active            bool
}

// NewTechnician creates a technician with default merit and availability
func NewTechnician(companyID uuid.UUID, fullName, phone, trade string) (*Technician, error) {
	if fullName = strings.TrimSpace(fullName); fullName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Technician name is required")
	}
	return &Technician{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		FullName:             fullName,
		Phone:                strings.TrimSpace(phone),
		Trade:                strings.TrimSpace(trade),
		MeritPercent:         DefaultMeritPercent,
		Availability:         AvailabilityAvailable,
		Active:               true,
	}, nil
}

// SetShift sets the technician's working hours (HH:MM:SS)
func (t *Technician) SetShift(start, end string) {
	t.ShiftStart = start
	t.ShiftEnd = end
	t.Touch()
	t.IncrementVersion()
}

// SetMeritPercent adjusts the payout scale
func (t *Technician) SetMeritPercent(percent int) error {
	if percent < minMeritPercent || percent > maxMeritPercent {
		return shared.NewDomainError("INVALID_MERIT", "Merit percent must be between 0 and 200")
	}
	t.MeritPercent = percent
	t.Touch()
	t.IncrementVersion()
	return nil
}

// SetAvailability changes the dispatch availability
func (t *Technician) SetAvailability(availability Availability) error {
	switch availability {
	case AvailabilityAvailable, AvailabilityOnJob, AvailabilityOffShift, AvailabilityUnavailable:
	default:
		return shared.NewDomainError("INVALID_AVAILABILITY", "Unknown availability value")
	}
	t.Availability = availability
	t.Touch()
	t.IncrementVersion()
	return nil
}

// SetDefaultProperty pins the technician to a home property
func (t *Technician) SetDefaultProperty(propertyID *uuid.UUID) {
	t.DefaultPropertyID = propertyID
	t.Touch()
	t.IncrementVersion()
}

// UpdateContact changes the technician's contact details
func (t *Technician) UpdateContact(fullName, phone, email, trade string) error {
	if fullName = strings.TrimSpace(fullName); fullName == "" {
		return shared.NewDomainError("INVALID_INPUT", "Technician name is required")
	}
	t.FullName = fullName
	t.Phone = strings.TrimSpace(phone)
	t.Email = strings.TrimSpace(email)
	t.Trade = strings.TrimSpace(trade)
	t.Touch()
	t.IncrementVersion()
	return nil
}

// CanTakeJob reports whether the technician can be assigned a new job
func (t *Technician) CanTakeJob() bool {
	return t.Active && t.Availability == AvailabilityAvailable
}

// Deactivate removes the technician from dispatch
func (t *Technician) Deactivate() {
	t.Active = false
	t.Availability = AvailabilityUnavailable
	t.Touch()
	t.IncrementVersion()
}

// Activate returns the technician to dispatch
func (t *Technician) Activate() {
	t.Active = true
	t.Availability = AvailabilityAvailable
	t.Touch()
	t.IncrementVersion()
}
