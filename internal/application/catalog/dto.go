package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// CreateCategoryInput contains the input for creating a service category
type CreateCategoryInput struct {
	CompanyID   uuid.UUID
	Name        string
	Description string
}

// UpdateCategoryInput contains the input for updating a service category
type UpdateCategoryInput struct {
	CompanyID   uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description string
	Active      *bool
}

// ListCategoriesInput contains filters for listing service categories
type ListCategoriesInput struct {
	CompanyID uuid.UUID
	Keyword   string
	Active    *bool
	Filter    shared.Filter
}

// CategoryInfo is the category view returned by catalog operations
type CategoryInfo struct {
	ID          uuid.UUID
	Name        string
	Description string
	Active      bool
}

// CreateServiceTypeInput contains the input for creating a service type
type CreateServiceTypeInput struct {
	CompanyID   uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description string
	BaseRate    decimal.Decimal
	Emergency   bool
}

// UpdateServiceTypeInput contains the input for updating a service type
type UpdateServiceTypeInput struct {
	CompanyID     uuid.UUID
	ServiceTypeID uuid.UUID
	Name          string
	Description   string
	BaseRate      decimal.Decimal
	Emergency     bool
	Active        *bool
}

// ListServiceTypesInput contains filters for listing service types
type ListServiceTypesInput struct {
	CompanyID  uuid.UUID
	CategoryID *uuid.UUID
	Keyword    string
	Active     *bool
	Emergency  *bool
	Filter     shared.Filter
}

// ServiceTypeInfo is the service type view returned by catalog operations
type ServiceTypeInfo struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description string
	BaseRate    decimal.Decimal
	Emergency   bool
	Active      bool
}
