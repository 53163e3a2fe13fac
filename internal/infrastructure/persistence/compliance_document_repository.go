package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchiq/backend/internal/domain/compliance"
	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/infrastructure/persistence/models"
)

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Save creates or updates a compliance document
func (r *GormDocumentRepository) Save(ctx context.Context, document *compliance.Document) error {
	var model models.ComplianceDocumentModel
	model.FromDomain(document)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a compliance document by ID within a company
func (r *GormDocumentRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*compliance.Document, error) {
	var model models.ComplianceDocumentModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List finds compliance documents matching the filter with pagination
func (r *GormDocumentRepository) List(ctx context.Context, filter compliance.DocumentFilter) (shared.Paginated[*compliance.Document], error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ComplianceDocumentModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*compliance.Document]{}, err
	}

	sortField := ValidateSortField(filter.SortBy, DocumentSortFields, "created_at")
	sortDir := ValidateSortOrder(filter.SortDir)

	var documentModels []models.ComplianceDocumentModel
	if err := query.
		Order(sortField + " " + sortDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&documentModels).Error; err != nil {
		return shared.Paginated[*compliance.Document]{}, err
	}

	documents := make([]*compliance.Document, len(documentModels))
	for i := range documentModels {
		documents[i] = documentModels[i].ToDomain()
	}
	return shared.NewPaginated(documents, total, filter.Page, filter.Limit()), nil
}

// CountPending counts documents awaiting review for a company
func (r *GormDocumentRepository) CountPending(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ComplianceDocumentModel{}).
		Where("company_id = ? AND status = ?", companyID, compliance.ReviewPending).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes a compliance document within a company
func (r *GormDocumentRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.ComplianceDocumentModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies document filter conditions to the query
func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter compliance.DocumentFilter) *gorm.DB {
	query = query.Where("company_id = ?", filter.CompanyID)
	if filter.TechnicianID != nil {
		query = query.Where("technician_id = ?", *filter.TechnicianID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ExpiresBefore != nil {
		query = query.Where("expires_at IS NOT NULL AND expires_at <= ?", *filter.ExpiresBefore)
	}
	return query
}

// Ensure GormDocumentRepository implements DocumentRepository
var _ compliance.DocumentRepository = (*GormDocumentRepository)(nil)
