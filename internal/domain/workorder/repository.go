package workorder

import (
	"context"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// WorkOrderFilter defines filtering options for work order queries
type WorkOrderFilter struct {
	shared.Filter
	CompanyID    uuid.UUID
	Status       *Status
	Priority     *Priority
	PropertyID   *uuid.UUID
	TechnicianID *uuid.UUID
	Keyword      string
}

// NewWorkOrderFilter creates a work order filter for a company
func NewWorkOrderFilter(companyID uuid.UUID) WorkOrderFilter {
	return WorkOrderFilter{Filter: shared.DefaultFilter(), CompanyID: companyID}
}

// WithStatus filters by lifecycle status
func (f WorkOrderFilter) WithStatus(status Status) WorkOrderFilter {
	f.Status = &status
	return f
}

// WithPriority filters by priority
func (f WorkOrderFilter) WithPriority(priority Priority) WorkOrderFilter {
	f.Priority = &priority
	return f
}

// WithProperty filters by property
func (f WorkOrderFilter) WithProperty(propertyID uuid.UUID) WorkOrderFilter {
	f.PropertyID = &propertyID
	return f
}

// WithTechnician filters by assigned technician
func (f WorkOrderFilter) WithTechnician(technicianID uuid.UUID) WorkOrderFilter {
	f.TechnicianID = &technicianID
	return f
}

// WithKeyword filters by issue or description
func (f WorkOrderFilter) WithKeyword(keyword string) WorkOrderFilter {
	f.Keyword = keyword
	return f
}

// WorkOrderRepository defines persistence operations for work orders
type WorkOrderRepository interface {
	Save(ctx context.Context, workOrder *WorkOrder) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*WorkOrder, error)
	List(ctx context.Context, filter WorkOrderFilter) (shared.Paginated[*WorkOrder], error)
	CountByStatus(ctx context.Context, companyID uuid.UUID, status Status) (int64, error)
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

// EvidenceRepository defines persistence operations for job evidence
type EvidenceRepository interface {
	Save(ctx context.Context, evidence *JobEvidence) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*JobEvidence, error)
	ListByWorkOrder(ctx context.Context, companyID, workOrderID uuid.UUID) ([]*JobEvidence, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
