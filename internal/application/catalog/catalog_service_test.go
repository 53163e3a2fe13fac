package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/catalog"
	"github.com/dispatchiq/backend/internal/domain/shared"
)

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.ServiceCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*catalog.ServiceCategory, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ServiceCategory), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, companyID uuid.UUID, name string) (*catalog.ServiceCategory, error) {
	args := m.Called(ctx, companyID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ServiceCategory), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, filter catalog.CategoryFilter) (shared.Paginated[*catalog.ServiceCategory], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*catalog.ServiceCategory]), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

// MockServiceTypeRepository is a mock implementation of catalog.ServiceTypeRepository
type MockServiceTypeRepository struct {
	mock.Mock
}

func (m *MockServiceTypeRepository) Save(ctx context.Context, serviceType *catalog.ServiceType) error {
	args := m.Called(ctx, serviceType)
	return args.Error(0)
}

func (m *MockServiceTypeRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*catalog.ServiceType, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ServiceType), args.Error(1)
}

func (m *MockServiceTypeRepository) FindByName(ctx context.Context, companyID uuid.UUID, name string) (*catalog.ServiceType, error) {
	args := m.Called(ctx, companyID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ServiceType), args.Error(1)
}

func (m *MockServiceTypeRepository) List(ctx context.Context, filter catalog.ServiceTypeFilter) (shared.Paginated[*catalog.ServiceType], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*catalog.ServiceType]), args.Error(1)
}

func (m *MockServiceTypeRepository) CountByCategory(ctx context.Context, companyID, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockServiceTypeRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func newTestService() (*Service, *MockCategoryRepository, *MockServiceTypeRepository) {
	categoryRepo := new(MockCategoryRepository)
	serviceTypeRepo := new(MockServiceTypeRepository)
	return NewService(categoryRepo, serviceTypeRepo, zap.NewNop()), categoryRepo, serviceTypeRepo
}

func TestService_CreateCategory(t *testing.T) {
	companyID := uuid.New()

	t.Run("creates category", func(t *testing.T) {
		service, categoryRepo, _ := newTestService()

		categoryRepo.On("FindByName", mock.Anything, companyID, "HVAC").Return(nil, shared.ErrNotFound)
		categoryRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.ServiceCategory")).Return(nil)

		info, err := service.CreateCategory(context.Background(), CreateCategoryInput{
			CompanyID:   companyID,
			Name:        "HVAC",
			Description: "Heating and cooling",
		})

		require.NoError(t, err)
		assert.Equal(t, "HVAC", info.Name)
		assert.True(t, info.Active)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		service, categoryRepo, _ := newTestService()

		existing, err := catalog.NewServiceCategory(companyID, "HVAC", "")
		require.NoError(t, err)
		categoryRepo.On("FindByName", mock.Anything, companyID, "HVAC").Return(existing, nil)

		_, err = service.CreateCategory(context.Background(), CreateCategoryInput{
			CompanyID: companyID,
			Name:      "HVAC",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CATEGORY_EXISTS", domainErr.Code)
	})
}

func TestService_DeleteCategory(t *testing.T) {
	companyID := uuid.New()
	categoryID := uuid.New()

	t.Run("deletes empty category", func(t *testing.T) {
		service, categoryRepo, serviceTypeRepo := newTestService()

		serviceTypeRepo.On("CountByCategory", mock.Anything, companyID, categoryID).Return(int64(0), nil)
		categoryRepo.On("Delete", mock.Anything, companyID, categoryID).Return(nil)

		err := service.DeleteCategory(context.Background(), companyID, categoryID)

		require.NoError(t, err)
		categoryRepo.AssertExpectations(t)
	})

	t.Run("rejects category with service types", func(t *testing.T) {
		service, categoryRepo, serviceTypeRepo := newTestService()

		serviceTypeRepo.On("CountByCategory", mock.Anything, companyID, categoryID).Return(int64(3), nil)

		err := service.DeleteCategory(context.Background(), companyID, categoryID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CATEGORY_IN_USE", domainErr.Code)
		categoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_CreateServiceType(t *testing.T) {
	companyID := uuid.New()

	t.Run("creates type under existing category", func(t *testing.T) {
		service, categoryRepo, serviceTypeRepo := newTestService()

		category, err := catalog.NewServiceCategory(companyID, "HVAC", "")
		require.NoError(t, err)
		categoryRepo.On("FindByID", mock.Anything, companyID, category.ID).Return(category, nil)
		serviceTypeRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.ServiceType")).Return(nil)

		info, err := service.CreateServiceType(context.Background(), CreateServiceTypeInput{
			CompanyID:  companyID,
			CategoryID: category.ID,
			Name:       "AC repair",
			BaseRate:   decimal.NewFromInt(120),
			Emergency:  true,
		})

		require.NoError(t, err)
		assert.Equal(t, "AC repair", info.Name)
		assert.Equal(t, category.ID, info.CategoryID)
		assert.True(t, info.Emergency)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		service, categoryRepo, _ := newTestService()

		categoryID := uuid.New()
		categoryRepo.On("FindByID", mock.Anything, companyID, categoryID).Return(nil, shared.ErrNotFound)

		_, err := service.CreateServiceType(context.Background(), CreateServiceTypeInput{
			CompanyID:  companyID,
			CategoryID: categoryID,
			Name:       "AC repair",
			BaseRate:   decimal.NewFromInt(120),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CATEGORY_NOT_FOUND", domainErr.Code)
	})

	t.Run("rejects negative base rate", func(t *testing.T) {
		service, categoryRepo, _ := newTestService()

		category, err := catalog.NewServiceCategory(companyID, "HVAC", "")
		require.NoError(t, err)
		categoryRepo.On("FindByID", mock.Anything, companyID, category.ID).Return(category, nil)

		_, err = service.CreateServiceType(context.Background(), CreateServiceTypeInput{
			CompanyID:  companyID,
			CategoryID: category.ID,
			Name:       "AC repair",
			BaseRate:   decimal.NewFromInt(-5),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_RATE", domainErr.Code)
	})
}

func TestService_UpdateServiceType(t *testing.T) {
	companyID := uuid.New()

	t.Run("updates details and deactivates", func(t *testing.T) {
		service, _, serviceTypeRepo := newTestService()

		serviceType, err := catalog.NewServiceType(companyID, uuid.New(), "AC repair", "", decimal.NewFromInt(120), false)
		require.NoError(t, err)
		serviceTypeRepo.On("FindByID", mock.Anything, companyID, serviceType.ID).Return(serviceType, nil)
		serviceTypeRepo.On("Save", mock.Anything, serviceType).Return(nil)

		inactive := false
		info, err := service.UpdateServiceType(context.Background(), UpdateServiceTypeInput{
			CompanyID:     companyID,
			ServiceTypeID: serviceType.ID,
			Name:          "AC repair and maintenance",
			BaseRate:      decimal.NewFromInt(140),
			Emergency:     true,
			Active:        &inactive,
		})

		require.NoError(t, err)
		assert.Equal(t, "AC repair and maintenance", info.Name)
		assert.True(t, info.Emergency)
		assert.False(t, info.Active)
	})
}

func TestService_ListCategories(t *testing.T) {
	companyID := uuid.New()
	service, categoryRepo, _ := newTestService()

	first, err := catalog.NewServiceCategory(companyID, "HVAC", "")
	require.NoError(t, err)
	second, err := catalog.NewServiceCategory(companyID, "Plumbing", "")
	require.NoError(t, err)

	categoryRepo.On("List", mock.Anything, mock.MatchedBy(func(f catalog.CategoryFilter) bool {
		return f.CompanyID == companyID && f.Keyword == "h"
	})).Return(shared.NewPaginated([]*catalog.ServiceCategory{first, second}, 2, 1, 20), nil)

	page, err := service.ListCategories(context.Background(), ListCategoriesInput{
		CompanyID: companyID,
		Keyword:   "h",
		Filter:    shared.DefaultFilter(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "HVAC", page.Items[0].Name)
}
