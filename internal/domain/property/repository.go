package property

import (
	"context"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// PropertyFilter defines filtering options for property queries
type PropertyFilter struct {
	shared.Filter
	CompanyID uuid.UUID
	Keyword   string
}

// NewPropertyFilter creates a property filter for a company
func NewPropertyFilter(companyID uuid.UUID) PropertyFilter {
	return PropertyFilter{Filter: shared.DefaultFilter(), CompanyID: companyID}
}

// WithKeyword filters by name or address
func (f PropertyFilter) WithKeyword(keyword string) PropertyFilter {
	f.Keyword = keyword
	return f
}

// VendorFilter defines filtering options for emergency vendor queries
type VendorFilter struct {
	shared.Filter
	CompanyID uuid.UUID
	Category  *VendorCategory
	Active    *bool
}

// NewVendorFilter creates a vendor filter for a company
func NewVendorFilter(companyID uuid.UUID) VendorFilter {
	return VendorFilter{Filter: shared.DefaultFilter(), CompanyID: companyID}
}

// WithCategory filters by vendor category
func (f VendorFilter) WithCategory(category VendorCategory) VendorFilter {
	f.Category = &category
	return f
}

// WithActive filters by active flag
func (f VendorFilter) WithActive(active bool) VendorFilter {
	f.Active = &active
	return f
}

// PropertyRepository defines persistence operations for properties
type PropertyRepository interface {
	Save(ctx context.Context, property *Property) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Property, error)
	FindByName(ctx context.Context, companyID uuid.UUID, name string) (*Property, error)
	List(ctx context.Context, filter PropertyFilter) (shared.Paginated[*Property], error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

// UnitRepository defines persistence operations for property units
type UnitRepository interface {
	Save(ctx context.Context, unit *PropertyUnit) error
	FindByID(ctx context.Context, id uuid.UUID) (*PropertyUnit, error)
	FindByLabel(ctx context.Context, propertyID uuid.UUID, label string) (*PropertyUnit, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*PropertyUnit, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// VendorRepository defines persistence operations for emergency vendors
type VendorRepository interface {
	Save(ctx context.Context, vendor *EmergencyVendor) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*EmergencyVendor, error)
	List(ctx context.Context, filter VendorFilter) (shared.Paginated[*EmergencyVendor], error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
