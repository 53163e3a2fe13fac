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

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Save creates or updates a service category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.ServiceCategory) error {
	var model models.ServiceCategoryModel
	model.FromDomain(category)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a service category by ID within a company
func (r *GormCategoryRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*catalog.ServiceCategory, error) {
	var model models.ServiceCategoryModel
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

// FindByName finds a service category by name within a company
func (r *GormCategoryRepository) FindByName(ctx context.Context, companyID uuid.UUID, name string) (*catalog.ServiceCategory, error) {
	var model models.ServiceCategoryModel
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

// List finds service categories matching the filter with pagination
func (r *GormCategoryRepository) List(ctx context.Context, filter catalog.CategoryFilter) (shared.Paginated[*catalog.ServiceCategory], error) {
	query := r.db.WithContext(ctx).
		Model(&models.ServiceCategoryModel{}).
		Where("company_id = ?", filter.CompanyID)
	if filter.Keyword != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*catalog.ServiceCategory]{}, err
	}

	sortField := ValidateSortField(filter.SortBy, CategorySortFields, "created_at")
	sortDir := ValidateSortOrder(filter.SortDir)

	var categoryModels []models.ServiceCategoryModel
	if err := query.
		Order(sortField + " " + sortDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&categoryModels).Error; err != nil {
		return shared.Paginated[*catalog.ServiceCategory]{}, err
	}

	categories := make([]*catalog.ServiceCategory, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToDomain()
	}
	return shared.NewPaginated(categories, total, filter.Page, filter.Limit()), nil
}

// Delete deletes a service category within a company
func (r *GormCategoryRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.ServiceCategoryModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
