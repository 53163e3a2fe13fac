package workforce

import (
	"context"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// TechnicianFilter defines filtering options for technician queries
type TechnicianFilter struct {
	shared.Filter
	CompanyID    uuid.UUID
	Keyword      string
	Availability *Availability
	Active       *bool
}

// NewTechnicianFilter creates a technician filter for a company
func NewTechnicianFilter(companyID uuid.UUID) TechnicianFilter {
	return TechnicianFilter{Filter: shared.DefaultFilter(), CompanyID: companyID}
}

// WithKeyword filters by name, phone or trade
func (f TechnicianFilter) WithKeyword(keyword string) TechnicianFilter {
	f.Keyword = keyword
	return f
}

// WithAvailability filters by dispatch availability
func (f TechnicianFilter) WithAvailability(availability Availability) TechnicianFilter {
	f.Availability = &availability
	return f
}

// WithActive filters by active flag
func (f TechnicianFilter) WithActive(active bool) TechnicianFilter {
	f.Active = &active
	return f
}

// TechnicianRepository defines persistence operations for technicians
type TechnicianRepository interface {
	Save(ctx context.Context, technician *Technician) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Technician, error)
	List(ctx context.Context, filter TechnicianFilter) (shared.Paginated[*Technician], error)
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
