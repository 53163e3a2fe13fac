package compliance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// DocumentFilter defines filtering options for compliance document queries
type DocumentFilter struct {
	shared.Filter
	CompanyID     uuid.UUID
	TechnicianID  *uuid.UUID
	Type          *DocumentType
	Status        *ReviewStatus
	ExpiresBefore *time.Time
}

// NewDocumentFilter creates a document filter for a company
func NewDocumentFilter(companyID uuid.UUID) DocumentFilter {
	return DocumentFilter{Filter: shared.DefaultFilter(), CompanyID: companyID}
}

// WithTechnician filters by technician
func (f DocumentFilter) WithTechnician(technicianID uuid.UUID) DocumentFilter {
	f.TechnicianID = &technicianID
	return f
}

// WithType filters by document type
func (f DocumentFilter) WithType(docType DocumentType) DocumentFilter {
	f.Type = &docType
	return f
}

// WithStatus filters by review status
func (f DocumentFilter) WithStatus(status ReviewStatus) DocumentFilter {
	f.Status = &status
	return f
}

// WithExpiresBefore filters to documents expiring before the given time
func (f DocumentFilter) WithExpiresBefore(deadline time.Time) DocumentFilter {
	f.ExpiresBefore = &deadline
	return f
}

// DocumentRepository defines persistence operations for compliance documents
type DocumentRepository interface {
	Save(ctx context.Context, document *Document) error
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Document, error)
	List(ctx context.Context, filter DocumentFilter) (shared.Paginated[*Document], error)
	CountPending(ctx context.Context, companyID uuid.UUID) (int64, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
