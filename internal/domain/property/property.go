package property

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// Property is a managed building or site a company services. Units
// belong to properties and are upserted by label when work orders
// reference them.
type Property struct {
	shared.CompanyAggregateRoot
	Name      string
	Address   string
	City      string
	State     string
	Zip       string
	UnitCount int
	Notes     string
}

// NewProperty creates a new managed property
func NewProperty(companyID uuid.UUID, name, address string) (*Property, error) {
	if name = strings.TrimSpace(name); name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Property name is required")
	}
	return &Property{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Address:              strings.TrimSpace(address),
	}, nil
}

// UpdateDetails changes the property address fields and notes
func (p *Property) UpdateDetails(address, city, state, zip, notes string) {
	p.Address = strings.TrimSpace(address)
	p.City = strings.TrimSpace(city)
	p.State = strings.TrimSpace(state)
	p.Zip = strings.TrimSpace(zip)
	p.Notes = strings.TrimSpace(notes)
	p.Touch()
	p.IncrementVersion()
}

// Rename changes the property display name
func (p *Property) Rename(name string) error {
	if name = strings.TrimSpace(name); name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Property name is required")
	}
	p.Name = name
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetUnitCount records the declared number of units
func (p *Property) SetUnitCount(count int) error {
	if count < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Unit count cannot be negative")
	}
	p.UnitCount = count
	p.Touch()
	p.IncrementVersion()
	return nil
}
