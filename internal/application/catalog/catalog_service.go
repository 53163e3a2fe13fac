package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/catalog"
	"github.com/dispatchiq/backend/internal/domain/shared"
)

// Service manages the service taxonomy: categories and the billable
// service types under them.
type Service struct {
	categoryRepo    catalog.CategoryRepository
	serviceTypeRepo catalog.ServiceTypeRepository
	logger          *zap.Logger
}

// NewService creates a new catalog service
func NewService(
	categoryRepo catalog.CategoryRepository,
	serviceTypeRepo catalog.ServiceTypeRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		categoryRepo:    categoryRepo,
		serviceTypeRepo: serviceTypeRepo,
		logger:          logger,
	}
}

// CreateCategory creates a service category. Names are unique per company.
func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryInfo, error) {
	if _, err := s.categoryRepo.FindByName(ctx, input.CompanyID, input.Name); err == nil {
		return nil, shared.NewDomainError("CATEGORY_EXISTS", "A category with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to check category name uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create category")
	}

	category, err := catalog.NewServiceCategory(input.CompanyID, input.Name, input.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		s.logger.Error("Failed to save category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create category")
	}

	info := toCategoryInfo(category)
	return &info, nil
}

// GetCategory returns a single category by ID
func (s *Service) GetCategory(ctx context.Context, companyID, categoryID uuid.UUID) (*CategoryInfo, error) {
	category, err := s.categoryRepo.FindByID(ctx, companyID, categoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, err
	}
	info := toCategoryInfo(category)
	return &info, nil
}

// ListCategories returns a paginated list of categories
func (s *Service) ListCategories(ctx context.Context, input ListCategoriesInput) (shared.Paginated[CategoryInfo], error) {
	filter := catalog.NewCategoryFilter(input.CompanyID)
	filter.Filter = input.Filter
	filter.Keyword = input.Keyword
	filter.Active = input.Active

	page, err := s.categoryRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return shared.Paginated[CategoryInfo]{}, shared.NewDomainError("INTERNAL_ERROR", "Failed to list categories")
	}

	items := make([]CategoryInfo, 0, len(page.Items))
	for _, category := range page.Items {
		items = append(items, toCategoryInfo(category))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// UpdateCategory changes a category's details and active flag
func (s *Service) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*CategoryInfo, error) {
	category, err := s.categoryRepo.FindByID(ctx, input.CompanyID, input.CategoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, err
	}

	if err := category.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	if input.Active != nil {
		if *input.Active {
			category.Activate()
		} else {
			category.Deactivate()
		}
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		s.logger.Error("Failed to save category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update category")
	}

	info := toCategoryInfo(category)
	return &info, nil
}

// DeleteCategory removes a category. Categories that still have service
// types cannot be deleted.
func (s *Service) DeleteCategory(ctx context.Context, companyID, categoryID uuid.UUID) error {
	count, err := s.serviceTypeRepo.CountByCategory(ctx, companyID, categoryID)
	if err != nil {
		s.logger.Error("Failed to count service types", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete category")
	}
	if count > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has service types")
	}

	if err := s.categoryRepo.Delete(ctx, companyID, categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return err
	}
	s.logger.Info("Category deleted", zap.String("category_id", categoryID.String()))
	return nil
}

// CreateServiceType creates a service type under an existing category
func (s *Service) CreateServiceType(ctx context.Context, input CreateServiceTypeInput) (*ServiceTypeInfo, error) {
	if _, err := s.categoryRepo.FindByID(ctx, input.CompanyID, input.CategoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, err
	}

	serviceType, err := catalog.NewServiceType(input.CompanyID, input.CategoryID,
		input.Name, input.Description, input.BaseRate, input.Emergency)
	if err != nil {
		return nil, err
	}
	if err := s.serviceTypeRepo.Save(ctx, serviceType); err != nil {
		s.logger.Error("Failed to save service type", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create service type")
	}

	info := toServiceTypeInfo(serviceType)
	return &info, nil
}

// GetServiceType returns a single service type by ID
func (s *Service) GetServiceType(ctx context.Context, companyID, serviceTypeID uuid.UUID) (*ServiceTypeInfo, error) {
	serviceType, err := s.serviceTypeRepo.FindByID(ctx, companyID, serviceTypeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SERVICE_TYPE_NOT_FOUND", "Service type not found")
		}
		return nil, err
	}
	info := toServiceTypeInfo(serviceType)
	return &info, nil
}

// ListServiceTypes returns a paginated list of service types
func (s *Service) ListServiceTypes(ctx context.Context, input ListServiceTypesInput) (shared.Paginated[ServiceTypeInfo], error) {
	filter := catalog.NewServiceTypeFilter(input.CompanyID)
	filter.Filter = input.Filter
	filter.CategoryID = input.CategoryID
	filter.Keyword = input.Keyword
	filter.Active = input.Active
	filter.Emergency = input.Emergency

	page, err := s.serviceTypeRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list service types", zap.Error(err))
		return shared.Paginated[ServiceTypeInfo]{}, shared.NewDomainError("INTERNAL_ERROR", "Failed to list service types")
	}

	items := make([]ServiceTypeInfo, 0, len(page.Items))
	for _, serviceType := range page.Items {
		items = append(items, toServiceTypeInfo(serviceType))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// UpdateServiceType changes a service type's details and active flag
func (s *Service) UpdateServiceType(ctx context.Context, input UpdateServiceTypeInput) (*ServiceTypeInfo, error) {
	serviceType, err := s.serviceTypeRepo.FindByID(ctx, input.CompanyID, input.ServiceTypeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SERVICE_TYPE_NOT_FOUND", "Service type not found")
		}
		return nil, err
	}

	if err := serviceType.Update(input.Name, input.Description, input.BaseRate, input.Emergency); err != nil {
		return nil, err
	}
	if input.Active != nil {
		if *input.Active {
			serviceType.Activate()
		} else {
			serviceType.Deactivate()
		}
	}
	if err := s.serviceTypeRepo.Save(ctx, serviceType); err != nil {
		s.logger.Error("Failed to save service type", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update service type")
	}

	info := toServiceTypeInfo(serviceType)
	return &info, nil
}

// DeleteServiceType removes a service type
func (s *Service) DeleteServiceType(ctx context.Context, companyID, serviceTypeID uuid.UUID) error {
	if err := s.serviceTypeRepo.Delete(ctx, companyID, serviceTypeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("SERVICE_TYPE_NOT_FOUND", "Service type not found")
		}
		return err
	}
	s.logger.Info("Service type deleted", zap.String("service_type_id", serviceTypeID.String()))
	return nil
}

func toCategoryInfo(category *catalog.ServiceCategory) CategoryInfo {
	return CategoryInfo{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Active:      category.Active,
	}
}

func toServiceTypeInfo(serviceType *catalog.ServiceType) ServiceTypeInfo {
	return ServiceTypeInfo{
		ID:          serviceType.ID,
		CategoryID:  serviceType.CategoryID,
		Name:        serviceType.Name,
		Description: serviceType.Description,
		BaseRate:    serviceType.BaseRate,
		Emergency:   serviceType.Emergency,
		Active:      serviceType.Active,
	}
}
