package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// CategoryFilter defines filtering options for service category queries
type CategoryFilter struct {
	shared.Filter
	CompanyID uuid.UUID
	Keyword   string
	Active    *bool
}

// NewCategoryFilter creates a category filter for a company
func NewCategoryFilter(companyID uuid.UUID) CategoryFilter {
	return CategoryFilter{Filter: shared.DefaultFilter(), CompanyID: companyID}
}

// WithKeyword filters by name
func (f CategoryFilter) WithKeyword(keyword string) CategoryFilter {
	f.Keyword = keyword
	return f
}

// WithActive filters by active flag
func (f CategoryFilter) WithActive(active bool) CategoryFilter {
	f.Active = &active
	return f
}

// ServiceTypeFilter defines filtering options for service type queries
type ServiceTypeFilter struct {
	shared.Filter
	CompanyID  uuid.UUID
	CategoryID *uuid.UUID
	Keyword    string
	Active     *bool
	Emergency  *bool
}

// NewServiceTypeFilter creates a service type filter for a company
func NewServiceTypeFilter(companyID uuid.UUID) ServiceTypeFilter {
	return ServiceTypeFilter{Filter: shared.DefaultFilter(), CompanyID: companyID}
}

// WithCategory filters by parent category
func (f ServiceTypeFilter) WithCategory(categoryID uuid.UUID) ServiceTypeFilter {
	f.CategoryID = &categoryID
	return f
}

// WithKeyword filters by name
func (f ServiceTypeFilter) WithKeyword(keyword string) ServiceTypeFilter {
	f.Keyword = keyword
	return f
}

// WithActive filters by active flag
func (f ServiceTypeFilter) WithActive(active bool) ServiceTypeFilter {
	f.Active = &active
	return f
}

// WithEmergency filters by emergency flag
func (f ServiceTypeFilter) WithEmergency(emergency bool) ServiceTypeFilter {
	f.Emergency = &emergency
	return f
}

// CategoryRepository defines persistence operations for service categories
type CategoryRepository interface {
	Save(ctx context.Context, category *ServiceCategory) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*ServiceCategory, error)
	FindByName(ctx context.Context, companyID uuid.UUID, name string) (*ServiceCategory, error)
	List(ctx context.Context, filter CategoryFilter) (shared.Paginated[*ServiceCategory], error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

// ServiceTypeRepository defines persistence operations for service types
type ServiceTypeRepository interface {
	Save(ctx context.Context, serviceType *ServiceType) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*ServiceType, error)
	FindByName(ctx context.Context, companyID uuid.UUID, name string) (*ServiceType, error)
	List(ctx context.Context, filter ServiceTypeFilter) (shared.Paginated[*ServiceType], error)
	CountByCategory(ctx context.Context, companyID, categoryID uuid.UUID) (int64, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
