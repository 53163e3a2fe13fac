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

// GormWorkOrderRepository implements WorkOrderRepository using GORM
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderRepository creates a new GormWorkOrderRepository
func NewGormWorkOrderRepository(db *gorm.DB) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

// Save creates or updates a work order. Updates are guarded by the
// aggregate version so concurrent dispatchers cannot overwrite each
// other's assignment.
func (r *GormWorkOrderRepository) Save(ctx context.Context, wo *workorder.WorkOrder) error {
	var model models.WorkOrderModel
	model.FromDomain(wo)

	if wo.Version <= 1 {
		return r.db.WithContext(ctx).Save(&model).Error
	}

	result := r.db.WithContext(ctx).
		Model(&models.WorkOrderModel{}).
		Where("id = ? AND version = ?", wo.ID, wo.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a work order by ID within a company
func (r *GormWorkOrderRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*workorder.WorkOrder, error) {
	var model models.WorkOrderModel
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

// List finds work orders matching the filter with pagination
func (r *GormWorkOrderRepository) List(ctx context.Context, filter workorder.WorkOrderFilter) (shared.Paginated[*workorder.WorkOrder], error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.WorkOrderModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*workorder.WorkOrder]{}, err
	}

	sortField := ValidateSortField(filter.SortBy, WorkOrderSortFields, "created_at")
	sortDir := ValidateSortOrder(filter.SortDir)

	var orderModels []models.WorkOrderModel
	if err := query.
		Order(sortField + " " + sortDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&orderModels).Error; err != nil {
		return shared.Paginated[*workorder.WorkOrder]{}, err
	}

	orders := make([]*workorder.WorkOrder, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return shared.NewPaginated(orders, total, filter.Page, filter.Limit()), nil
}

// CountByStatus counts work orders in a given status for a company
func (r *GormWorkOrderRepository) CountByStatus(ctx context.Context, companyID uuid.UUID, status workorder.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WorkOrderModel{}).
		Where("company_id = ? AND status = ?", companyID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCompany counts all work orders for a company
func (r *GormWorkOrderRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WorkOrderModel{}).
		Where("company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes a work order within a company
func (r *GormWorkOrderRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.WorkOrderModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies work order filter conditions to the query
func (r *GormWorkOrderRepository) applyFilter(query *gorm.DB, filter workorder.WorkOrderFilter) *gorm.DB {
	query = query.Where("company_id = ?", filter.CompanyID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.TechnicianID != nil {
		query = query.Where("technician_id = ?", *filter.TechnicianID)
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("issue ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormWorkOrderRepository implements WorkOrderRepository
var _ workorder.WorkOrderRepository = (*GormWorkOrderRepository)(nil)
