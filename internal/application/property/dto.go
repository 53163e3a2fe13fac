package property

import (
	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// CreatePropertyInput contains the input for creating a property
type CreatePropertyInput struct {
	CompanyID uuid.UUID
	Name      string
	Address   string
	City      string
	State     string
	Zip       string
	UnitCount int
	Notes     string
}

// UpdatePropertyInput contains the input for updating a property
type UpdatePropertyInput struct {
	CompanyID  uuid.UUID
	PropertyID uuid.UUID
	Name       string
	Address    string
	City       string
	State      string
	Zip        string
	UnitCount  int
	Notes      string
}

// ListPropertiesInput contains filters for listing properties
type ListPropertiesInput struct {
	CompanyID uuid.UUID
	Keyword   string
	Filter    shared.Filter
}

// PropertyInfo is the property view returned by property operations
type PropertyInfo struct {
	ID        uuid.UUID
	Name      string
	Address   string
	City      string
	State     string
	Zip       string
	UnitCount int
	Notes     string
}

// UpsertUnitInput contains the input for creating or updating a unit by label
type UpsertUnitInput struct {
	CompanyID  uuid.UUID
	PropertyID uuid.UUID
	Label      string
	Occupied   bool
	TenantName string
}

// UnitInfo is the unit view returned by property operations
type UnitInfo struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	Label      string
	Occupied   bool
	TenantName string
}

// CreateVendorInput contains the input for creating an emergency vendor
type CreateVendorInput struct {
	CompanyID uuid.UUID
	Name      string
	Category  string
	Phone     string
	Email     string
	Notes     string
}

// UpdateVendorInput contains the input for updating an emergency vendor
type UpdateVendorInput struct {
	CompanyID uuid.UUID
	VendorID  uuid.UUID
	Name      string
	Category  string
	Phone     string
	Email     string
	Notes     string
	Active    *bool
}

// ListVendorsInput contains filters for listing emergency vendors
type ListVendorsInput struct {
	CompanyID uuid.UUID
	Category  string
	Active    *bool
	Filter    shared.Filter
}

// VendorInfo is the vendor view returned by property operations
type VendorInfo struct {
	ID       uuid.UUID
	Name     string
	Category string
	Phone    string
	Email    string
	Notes    string
	Active   bool
}
