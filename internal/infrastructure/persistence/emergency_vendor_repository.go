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

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// Save creates or updates an emergency vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *property.EmergencyVendor) error {
	var model models.EmergencyVendorModel
	model.FromDomain(vendor)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds an emergency vendor by ID within a company
func (r *GormVendorRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*property.EmergencyVendor, error) {
	var model models.EmergencyVendorModel
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

// List finds emergency vendors matching the filter with pagination
func (r *GormVendorRepository) List(ctx context.Context, filter property.VendorFilter) (shared.Paginated[*property.EmergencyVendor], error) {
	query := r.db.WithContext(ctx).
		Model(&models.EmergencyVendorModel{}).
		Where("company_id = ?", filter.CompanyID)
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*property.EmergencyVendor]{}, err
	}

	sortField := ValidateSortField(filter.SortBy, VendorSortFields, "created_at")
	sortDir := ValidateSortOrder(filter.SortDir)

	var vendorModels []models.EmergencyVendorModel
	if err := query.
		Order(sortField + " " + sortDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&vendorModels).Error; err != nil {
		return shared.Paginated[*property.EmergencyVendor]{}, err
	}

	vendors := make([]*property.EmergencyVendor, len(vendorModels))
	for i := range vendorModels {
		vendors[i] = vendorModels[i].ToDomain()
	}
	return shared.NewPaginated(vendors, total, filter.Page, filter.Limit()), nil
}

// Delete deletes an emergency vendor within a company
func (r *GormVendorRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.EmergencyVendorModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormVendorRepository implements VendorRepository
var _ property.VendorRepository = (*GormVendorRepository)(nil)
