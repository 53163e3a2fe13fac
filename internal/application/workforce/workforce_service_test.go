package workforce

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/property"
	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/domain/workforce"
)

// MockTechnicianRepository is a mock implementation of workforce.TechnicianRepository
type MockTechnicianRepository struct {
	mock.Mock
}

func (m *MockTechnicianRepository) Save(ctx context.Context, technician *workforce.Technician) error {
	args := m.Called(ctx, technician)
	return args.Error(0)
}

func (m *MockTechnicianRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*workforce.Technician, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Technician), args.Error(1)
}

func (m *MockTechnicianRepository) List(ctx context.Context, filter workforce.TechnicianFilter) (shared.Paginated[*workforce.Technician], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*workforce.Technician]), args.Error(1)
}

func (m *MockTechnicianRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTechnicianRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

// MockPropertyRepository is a mock implementation of property.PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Save(ctx context.Context, prop *property.Property) error {
	args := m.Called(ctx, prop)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByName(ctx context.Context, companyID uuid.UUID, name string) (*property.Property, error) {
	args := m.Called(ctx, companyID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) List(ctx context.Context, filter property.PropertyFilter) (shared.Paginated[*property.Property], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*property.Property]), args.Error(1)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func newTestService() (*Service, *MockTechnicianRepository, *MockPropertyRepository) {
	technicianRepo := new(MockTechnicianRepository)
	propertyRepo := new(MockPropertyRepository)
	return NewService(technicianRepo, propertyRepo, zap.NewNop()), technicianRepo, propertyRepo
}

func TestService_CreateTechnician(t *testing.T) {
	companyID := uuid.New()

	t.Run("creates technician with normalized shift", func(t *testing.T) {
		service, technicianRepo, _ := newTestService()

		technicianRepo.On("Save", mock.Anything, mock.AnythingOfType("*workforce.Technician")).Return(nil)

		info, err := service.CreateTechnician(context.Background(), CreateTechnicianInput{
			CompanyID:  companyID,
			FullName:   "Sam Okafor",
			Phone:      "312-555-0101",
			Trade:      "hvac",
			ShiftStart: "08:00",
			ShiftEnd:   "17:00",
		})

		require.NoError(t, err)
		assert.Equal(t, "Sam Okafor", info.FullName)
		assert.Equal(t, "08:00:00", info.ShiftStart)
		assert.Equal(t, "17:00:00", info.ShiftEnd)
		assert.Equal(t, workforce.DefaultMeritPercent, info.MeritPercent)
		assert.Equal(t, "available", info.Availability)
	})

	t.Run("validates default property ownership", func(t *testing.T) {
		service, _, propertyRepo := newTestService()
		foreignID := uuid.New()

		propertyRepo.On("FindByID", mock.Anything, companyID, foreignID).Return(nil, shared.ErrNotFound)

		_, err := service.CreateTechnician(context.Background(), CreateTechnicianInput{
			CompanyID:       companyID,
			FullName:        "Sam Okafor",
			DefaultProperty: &foreignID,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNKNOWN_PROPERTY_REFERENCE", domainErr.Code)
	})

	t.Run("rejects out of range merit", func(t *testing.T) {
		service, _, _ := newTestService()

		merit := 250
		_, err := service.CreateTechnician(context.Background(), CreateTechnicianInput{
			CompanyID:    companyID,
			FullName:     "Sam Okafor",
			MeritPercent: &merit,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_MERIT", domainErr.Code)
	})
}

func TestService_SetAvailability(t *testing.T) {
	companyID := uuid.New()

	t.Run("transitions availability", func(t *testing.T) {
		service, technicianRepo, _ := newTestService()

		tech, err := workforce.NewTechnician(companyID, "Sam Okafor", "", "hvac")
		require.NoError(t, err)
		technicianRepo.On("FindByID", mock.Anything, companyID, tech.ID).Return(tech, nil)
		technicianRepo.On("Save", mock.Anything, tech).Return(nil)

		info, err := service.SetAvailability(context.Background(), SetAvailabilityInput{
			CompanyID:    companyID,
			TechnicianID: tech.ID,
			Availability: "on_job",
		})

		require.NoError(t, err)
		assert.Equal(t, "on_job", info.Availability)
	})

	t.Run("rejects unknown value", func(t *testing.T) {
		service, technicianRepo, _ := newTestService()

		tech, err := workforce.NewTechnician(companyID, "Sam Okafor", "", "hvac")
		require.NoError(t, err)
		technicianRepo.On("FindByID", mock.Anything, companyID, tech.ID).Return(tech, nil)

		_, err = service.SetAvailability(context.Background(), SetAvailabilityInput{
			CompanyID:    companyID,
			TechnicianID: tech.ID,
			Availability: "on vacation",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AVAILABILITY", domainErr.Code)
	})
}

func TestService_UpdateTechnician(t *testing.T) {
	companyID := uuid.New()

	t.Run("clears the default property", func(t *testing.T) {
		service, technicianRepo, _ := newTestService()

		tech, err := workforce.NewTechnician(companyID, "Sam Okafor", "", "hvac")
		require.NoError(t, err)
		propID := uuid.New()
		tech.SetDefaultProperty(&propID)

		technicianRepo.On("FindByID", mock.Anything, companyID, tech.ID).Return(tech, nil)
		technicianRepo.On("Save", mock.Anything, tech).Return(nil)

		info, err := service.UpdateTechnician(context.Background(), UpdateTechnicianInput{
			CompanyID:    companyID,
			TechnicianID: tech.ID,
			FullName:     "Sam Okafor",
			Trade:        "hvac",
			ClearDefault: true,
		})

		require.NoError(t, err)
		assert.Nil(t, info.DefaultPropertyID)
	})

	t.Run("deactivating pulls the technician from dispatch", func(t *testing.T) {
		service, technicianRepo, _ := newTestService()

		tech, err := workforce.NewTechnician(companyID, "Sam Okafor", "", "hvac")
		require.NoError(t, err)
		technicianRepo.On("FindByID", mock.Anything, companyID, tech.ID).Return(tech, nil)
		technicianRepo.On("Save", mock.Anything, tech).Return(nil)

		inactive := false
		info, err := service.UpdateTechnician(context.Background(), UpdateTechnicianInput{
			CompanyID:    companyID,
			TechnicianID: tech.ID,
			FullName:     "Sam Okafor",
			Trade:        "hvac",
			Active:       &inactive,
		})

		require.NoError(t, err)
		assert.False(t, info.Active)
		assert.Equal(t, "unavailable", info.Availability)
	})
}
