package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchiq/backend/internal/domain/catalog"
	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/infrastructure/persistence/models"
)

// GormServiceTypeRepository implements ServiceTypeRepository using GORM
type GormServiceTypeRepository struct {
	db *gorm.DB
}

// NewGormServiceTypeRepository creates a new GormServiceTypeRepository
func NewGormServiceTypeRepository(db *gorm.DB) *GormServiceTypeRepository {
	return &GormServiceTypeRepository{db: db}
}

// Save creates or updates a service type
func (r *GormServiceTypeRepository) Save(ctx context.Context, serviceType *catalog.ServiceType) error {
	var model models.ServiceTypeModel
	model.FromDomain(serviceType)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a service type by ID within a company
func (r *GormServiceTypeRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*catalog.ServiceType, error) {
	var model models.ServiceTypeModel
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

// FindByName finds a service type by name within a company
func (r *GormServiceTypeRepository) FindByName(ctx context.Context, companyID uuid.UUID, name string) (*catalog.ServiceType, error) {
	var model models.ServiceTypeModel
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

// List finds service types matching the filter with pagination
func (r *GormServiceTypeRepository) List(ctx context.Context, filter catalog.ServiceTypeFilter) (shared.Paginated[*catalog.ServiceType], error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ServiceTypeModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*catalog.ServiceType]{}, err
	}

	sortField := ValidateSortField(filter.SortBy, ServiceTypeSortFields, "created_at")
	sortDir := ValidateSortOrder(filter.SortDir)

	var typeModels []models.ServiceTypeModel
	if err := query.
		Order(sortField + " " + sortDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&typeModels).Error; err != nil {
		return shared.Paginated[*catalog.ServiceType]{}, err
	}

	types := make([]*catalog.ServiceType, len(typeModels))
	for i := range typeModels {
		types[i] = typeModels[i].ToDomain()
	}
	return shared.NewPaginated(types, total, filter.Page, filter.Limit()), nil
}

// CountByCategory counts service types under a category
func (r *GormServiceTypeRepository) CountByCategory(ctx context.Context, companyID, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ServiceTypeModel{}).
		Where("company_id = ? AND category_id = ?", companyID, categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes a service type within a company
func (r *GormServiceTypeRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.ServiceTypeModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies service type filter conditions to the query
func (r *GormServiceTypeRepository) applyFilter(query *gorm.DB, filter catalog.ServiceTypeFilter) *gorm.DB {
	query = query.Where("company_id = ?", filter.CompanyID)
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Keyword != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Emergency != nil {
		query = query.Where("emergency = ?", *filter.Emergency)
	}
	return query
}

// Ensure GormServiceTypeRepository implements ServiceTypeRepository
var _ catalog.ServiceTypeRepository = (*GormServiceTypeRepository)(nil)
