package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/domain/workforce"
	"github.com/dispatchiq/backend/internal/infrastructure/persistence/models"
)

// GormTechnicianRepository implements TechnicianRepository using GORM
type GormTechnicianRepository struct {
	db *gorm.DB
}

// NewGormTechnicianRepository creates a new GormTechnicianRepository
func NewGormTechnicianRepository(db *gorm.DB) *GormTechnicianRepository {
	return &GormTechnicianRepository{db: db}
}

// Save creates or updates a technician
func (r *GormTechnicianRepository) Save(ctx context.Context, technician *workforce.Technician) error {
	var model models.TechnicianModel
	model.FromDomain(technician)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a technician by ID within a company
func (r *GormTechnicianRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*workforce.Technician, error) {
	var model models.TechnicianModel
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

// List finds technicians matching the filter with pagination
func (r *GormTechnicianRepository) List(ctx context.Context, filter workforce.TechnicianFilter) (shared.Paginated[*workforce.Technician], error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TechnicianModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*workforce.Technician]{}, err
	}

	sortField := ValidateSortField(filter.SortBy, TechnicianSortFields, "created_at")
	sortDir := ValidateSortOrder(filter.SortDir)

	var technicianModels []models.TechnicianModel
	if err := query.
		Order(sortField + " " + sortDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&technicianModels).Error; err != nil {
		return shared.Paginated[*workforce.Technician]{}, err
	}

	technicians := make([]*workforce.Technician, len(technicianModels))
	for i := range technicianModels {
		technicians[i] = technicianModels[i].ToDomain()
	}
	return shared.NewPaginated(technicians, total, filter.Page, filter.Limit()), nil
}

// CountByCompany counts technicians for a company
func (r *GormTechnicianRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TechnicianModel{}).
		Where("company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes a technician within a company
func (r *GormTechnicianRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.TechnicianModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies technician filter conditions to the query
func (r *GormTechnicianRepository) applyFilter(query *gorm.DB, filter workforce.TechnicianFilter) *gorm.DB {
	query = query.Where("company_id = ?", filter.CompanyID)
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("full_name ILIKE ? OR phone ILIKE ? OR trade ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Availability != nil {
		query = query.Where("availability = ?", *filter.Availability)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	return query
}

// Ensure GormTechnicianRepository implements TechnicianRepository
var _ workforce.TechnicianRepository = (*GormTechnicianRepository)(nil)
