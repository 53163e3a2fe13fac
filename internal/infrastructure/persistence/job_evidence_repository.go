package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/domain/workorder"
	"github.com/dispatchiq/backend/internal/infrastructure/persistence/models"
)

// GormEvidenceRepository implements EvidenceRepository using GORM
type GormEvidenceRepository struct {
	db *gorm.DB
}

// NewGormEvidenceRepository creates a new GormEvidenceRepository
func NewGormEvidenceRepository(db *gorm.DB) *GormEvidenceRepository {
	return &GormEvidenceRepository{db: db}
}

// Save creates or updates a job evidence record
func (r *GormEvidenceRepository) Save(ctx context.Context, evidence *workorder.JobEvidence) error {
	var model models.JobEvidenceModel
	model.FromDomain(evidence)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a job evidence record by ID within a company
func (r *GormEvidenceRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*workorder.JobEvidence, error) {
	var model models.JobEvidenceModel
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

// ListByWorkOrder lists all evidence attached to a work order
func (r *GormEvidenceRepository) ListByWorkOrder(ctx context.Context, companyID, workOrderID uuid.UUID) ([]*workorder.JobEvidence, error) {
	var evidenceModels []models.JobEvidenceModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND work_order_id = ?", companyID, workOrderID).
		Order("created_at ASC").
		Find(&evidenceModels).Error; err != nil {
		return nil, err
	}

	evidence := make([]*workorder.JobEvidence, len(evidenceModels))
	for i := range evidenceModels {
		evidence[i] = evidenceModels[i].ToDomain()
	}
	return evidence, nil
}

// Delete deletes a job evidence record within a company
func (r *GormEvidenceRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.JobEvidenceModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormEvidenceRepository implements EvidenceRepository
var _ workorder.EvidenceRepository = (*GormEvidenceRepository)(nil)
