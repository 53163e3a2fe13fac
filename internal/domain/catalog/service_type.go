package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// ServiceType is a billable kind of work offered by a company, e.g.
// "AC repair" under the HVAC category.
type ServiceType struct {
	shared.CompanyAggregateRoot
	CategoryID  uuid.UUID
	Name        string
	Description string
	BaseRate    decimal.Decimal
	Emergency   bool
	Active      bool
}

// NewServiceType creates a new service type under a category
func NewServiceType(companyID, categoryID uuid.UUID, name, description string, baseRate decimal.Decimal, emergency bool) (*ServiceType, error) {
	if name = strings.TrimSpace(name); name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Service type name is required")
	}
	if baseRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Base rate cannot be negative")
	}
	return &ServiceType{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		CategoryID:           categoryID,
		Name:                 name,
		Description:          strings.TrimSpace(description),
		BaseRate:             baseRate,
		Emergency:            emergency,
		Active:               true,
	}, nil
}

// Update changes the service type details
func (s *ServiceType) Update(name, description string, baseRate decimal.Decimal, emergency bool) error {
	if name = strings.TrimSpace(name); name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Service type name is required")
	}
	if baseRate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Base rate cannot be negative")
	}
	s.Name = name
	s.Description = strings.TrimSpace(description)
	s.BaseRate = baseRate
	s.Emergency = emergency
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Deactivate hides the service type from intake
func (s *ServiceType) Deactivate() {
	s.Active = false
	s.Touch()
	s.IncrementVersion()
}

// Activate re-enables the service type
func (s *ServiceType) Activate() {
	s.Active = true
	s.Touch()
	s.IncrementVersion()
}
