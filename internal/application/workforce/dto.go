package workforce

import (
	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// CreateTechnicianInput contains the input for creating a technician
type CreateTechnicianInput struct {
	CompanyID       uuid.UUID
	FullName        string
	Phone           string
	Email           string
	Trade           string
	ShiftStart      string
	ShiftEnd        string
	MeritPercent    *int
	DefaultProperty *uuid.UUID
}

// UpdateTechnicianInput contains the input for updating a technician
type UpdateTechnicianInput struct {
	CompanyID       uuid.UUID
	TechnicianID    uuid.UUID
	FullName        string
	Phone           string
	Email           string
	Trade           string
	ShiftStart      string
	ShiftEnd        string
	MeritPercent    *int
	DefaultProperty *uuid.UUID
	ClearDefault    bool
	Active          *bool
}

// SetAvailabilityInput contains the input for an availability transition
type SetAvailabilityInput struct {
	CompanyID    uuid.UUID
	TechnicianID uuid.UUID
	Availability string
}

// ListTechniciansInput contains filters for listing technicians
type ListTechniciansInput struct {
	CompanyID    uuid.UUID
	Keyword      string
	Availability string
	Active       *bool
	Filter       shared.Filter
}

// TechnicianInfo is the technician view returned by workforce operations
type TechnicianInfo struct {
	ID                uuid.UUID
	FullName          string
	Phone             string
	Email             string
	Trade             string
	ShiftStart        string
	ShiftEnd          string
	MeritPercent      int
	Availability      string
	DefaultPropertyID *uuid.UUID
	Active            bool
}
