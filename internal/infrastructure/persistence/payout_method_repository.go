package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/domain/wallet"
	"github.com/dispatchiq/backend/internal/infrastructure/persistence/models"
)

// GormPayoutMethodRepository implements PayoutMethodRepository using GORM
type GormPayoutMethodRepository struct {
	db *gorm.DB
}

// NewGormPayoutMethodRepository creates a new GormPayoutMethodRepository
func NewGormPayoutMethodRepository(db *gorm.DB) *GormPayoutMethodRepository {
	return &GormPayoutMethodRepository{db: db}
}

// Save creates or updates a payout method
func (r *GormPayoutMethodRepository) Save(ctx context.Context, method *wallet.PayoutMethod) error {
	var model models.PayoutMethodModel
	model.FromDomain(method)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a payout method by ID within a company
func (r *GormPayoutMethodRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*wallet.PayoutMethod, error) {
	var model models.PayoutMethodModel
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

// ListByTechnician lists payout methods belonging to a technician
func (r *GormPayoutMethodRepository) ListByTechnician(ctx context.Context, companyID, technicianID uuid.UUID) ([]*wallet.PayoutMethod, error) {
	var methodModels []models.PayoutMethodModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND technician_id = ?", companyID, technicianID).
		Order("created_at ASC").
		Find(&methodModels).Error; err != nil {
		return nil, err
	}

	methods := make([]*wallet.PayoutMethod, len(methodModels))
	for i := range methodModels {
		methods[i] = methodModels[i].ToDomain()
	}
	return methods, nil
}

// ClearDefaults clears the default flag on all of a technician's payout methods
func (r *GormPayoutMethodRepository) ClearDefaults(ctx context.Context, companyID, technicianID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.PayoutMethodModel{}).
		Where("company_id = ? AND technician_id = ? AND is_default = ?", companyID, technicianID, true).
		Update("is_default", false).Error
}

// Delete deletes a payout method within a company
func (r *GormPayoutMethodRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.PayoutMethodModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPayoutMethodRepository implements PayoutMethodRepository
var _ wallet.PayoutMethodRepository = (*GormPayoutMethodRepository)(nil)
