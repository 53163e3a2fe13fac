package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// ServiceCategory groups related service types, e.g. HVAC or Plumbing.
// Categories are company scoped and unique by name within a company.
type ServiceCategory struct {
	shared.CompanyAggregateRoot
	Name        string
	Description string
	Active      bool
}

// NewServiceCategory creates a new service category
func NewServiceCategory(companyID uuid.UUID, name, description string) (*ServiceCategory, error) {
	if name = strings.TrimSpace(name); name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category name is required")
	}
	return &ServiceCategory{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Description:          strings.TrimSpace(description),
		Active:               true,
	}, nil
}

// Update changes the category name and description
func (c *ServiceCategory) Update(name, description string) error {
	if name = strings.TrimSpace(name); name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Category name is required")
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.Touch()
	c.IncrementVersion()
	return nil
}

// Deactivate hides the category from intake without deleting history
func (c *ServiceCategory) Deactivate() {
	c.Active = false
	c.Touch()
	c.IncrementVersion()
}

// Activate re-enables the category
func (c *ServiceCategory) Activate() {
	c.Active = true
	c.Touch()
	c.IncrementVersion()
}
