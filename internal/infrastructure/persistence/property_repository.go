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

// GormPropertyRepository implements PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	var model models.PropertyModel
	model.FromDomain(p)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a property by ID within a company
func (r *GormPropertyRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*property.Property, error) {
	var model models.PropertyModel
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

// FindByName finds a property by name within a company
func (r *GormPropertyRepository) FindByName(ctx context.Context, companyID uuid.UUID, name string) (*property.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND name = ?", companyID, name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List finds properties matching the filter with pagination
func (r *GormPropertyRepository) List(ctx context.Context, filter property.PropertyFilter) (shared.Paginated[*property.Property], error) {
	query := r.db.WithContext(ctx).
		Model(&models.PropertyModel{}).
		Where("company_id = ?", filter.CompanyID)
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ? OR city ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*property.Property]{}, err
	}

	sortField := ValidateSortField(filter.SortBy, PropertySortFields, "created_at")
	sortDir := ValidateSortOrder(filter.SortDir)

	var propertyModels []models.PropertyModel
	if err := query.
		Order(sortField + " " + sortDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&propertyModels).Error; err != nil {
		return shared.Paginated[*property.Property]{}, err
	}

	properties := make([]*property.Property, len(propertyModels))
	for i := range propertyModels {
		properties[i] = propertyModels[i].ToDomain()
	}
	return shared.NewPaginated(properties, total, filter.Page, filter.Limit()), nil
}

// Delete deletes a property within a company
func (r *GormPropertyRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.PropertyModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPropertyRepository implements PropertyRepository
var _ property.PropertyRepository = (*GormPropertyRepository)(nil)
