package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchiq/backend/internal/domain/property"
	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/infrastructure/persistence/models"
)

// GormUnitRepository implements UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// Save creates or updates a property unit
func (r *GormUnitRepository) Save(ctx context.Context, unit *property.PropertyUnit) error {
	var model models.PropertyUnitModel
	model.FromDomain(unit)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a property unit by ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.PropertyUnit, error) {
	var model models.PropertyUnitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLabel finds a unit by label within a property
func (r *GormUnitRepository) FindByLabel(ctx context.Context, propertyID uuid.UUID, label string) (*property.PropertyUnit, error) {
	if label == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Unit label cannot be empty")
	}
	var model models.PropertyUnitModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND label = ?", propertyID, label).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByProperty lists all units belonging to a property
func (r *GormUnitRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*property.PropertyUnit, error) {
	var unitModels []models.PropertyUnitModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("label ASC").
		Find(&unitModels).Error; err != nil {
		return nil, err
	}

	units := make([]*property.PropertyUnit, len(unitModels))
	for i := range unitModels {
		units[i] = unitModels[i].ToDomain()
	}
	return units, nil
}

// Delete deletes a property unit
func (r *GormUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PropertyUnitModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormUnitRepository implements UnitRepository
var _ property.UnitRepository = (*GormUnitRepository)(nil)
