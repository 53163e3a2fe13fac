package property

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/property"
	"github.com/dispatchiq/backend/internal/domain/shared"
)

// Service manages properties, their units and the emergency vendor
// directory.
type Service struct {
	propertyRepo property.PropertyRepository
	unitRepo     property.UnitRepository
	vendorRepo   property.VendorRepository
	logger       *zap.Logger
}

// NewService creates a new property service
func NewService(
	propertyRepo property.PropertyRepository,
	unitRepo property.UnitRepository,
	vendorRepo property.VendorRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		vendorRepo:   vendorRepo,
		logger:       logger,
	}
}

// CreateProperty creates a managed property
func (s *Service) CreateProperty(ctx context.Context, input CreatePropertyInput) (*PropertyInfo, error) {
	prop, err := property.NewProperty(input.CompanyID, input.Name, input.Address)
	if err != nil {
		return nil, err
	}
	prop.UpdateDetails(input.Address, input.City, input.State, input.Zip, input.Notes)
	if err := prop.SetUnitCount(input.UnitCount); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		s.logger.Error("Failed to save property", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create property")
	}

	info := toPropertyInfo(prop)
	return &info, nil
}

// GetProperty returns a single property by ID
func (s *Service) GetProperty(ctx context.Context, companyID, propertyID uuid.UUID) (*PropertyInfo, error) {
	prop, err := s.findProperty(ctx, companyID, propertyID)
	if err != nil {
		return nil, err
	}
	info := toPropertyInfo(prop)
	return &info, nil
}

// ListProperties returns a paginated list of properties
func (s *Service) ListProperties(ctx context.Context, input ListPropertiesInput) (shared.Paginated[PropertyInfo], error) {
	filter := property.NewPropertyFilter(input.CompanyID)
	filter.Filter = input.Filter
	filter.Keyword = input.Keyword

	page, err := s.propertyRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list properties", zap.Error(err))
		return shared.Paginated[PropertyInfo]{}, shared.NewDomainError("INTERNAL_ERROR", "Failed to list properties")
	}

	items := make([]PropertyInfo, 0, len(page.Items))
	for _, prop := range page.Items {
		items = append(items, toPropertyInfo(prop))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// UpdateProperty changes a property's name, address fields and unit count
func (s *Service) UpdateProperty(ctx context.Context, input UpdatePropertyInput) (*PropertyInfo, error) {
	prop, err := s.findProperty(ctx, input.CompanyID, input.PropertyID)
	if err != nil {
		return nil, err
	}

	if err := prop.Rename(input.Name); err != nil {
		return nil, err
	}
	prop.UpdateDetails(input.Address, input.City, input.State, input.Zip, input.Notes)
	if err := prop.SetUnitCount(input.UnitCount); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		s.logger.Error("Failed to save property", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update property")
	}

	info := toPropertyInfo(prop)
	return &info, nil
}

// DeleteProperty removes a property
func (s *Service) DeleteProperty(ctx context.Context, companyID, propertyID uuid.UUID) error {
	if err := s.propertyRepo.Delete(ctx, companyID, propertyID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("PROPERTY_NOT_FOUND", "Property not found")
		}
		return err
	}
	s.logger.Info("Property deleted", zap.String("property_id", propertyID.String()))
	return nil
}

// UpsertUnit creates a unit under a property or updates the existing
// unit with the same label. Work order intake uses this to register
// units lazily.
func (s *Service) UpsertUnit(ctx context.Context, input UpsertUnitInput) (*UnitInfo, error) {
	if _, err := s.findProperty(ctx, input.CompanyID, input.PropertyID); err != nil {
		return nil, err
	}

	unit, err := s.unitRepo.FindByLabel(ctx, input.PropertyID, input.Label)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		unit, err = property.NewPropertyUnit(input.PropertyID, input.Label)
		if err != nil {
			return nil, err
		}
	}
	unit.SetOccupancy(input.Occupied, input.TenantName)

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		s.logger.Error("Failed to save unit", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save unit")
	}

	info := toUnitInfo(unit)
	return &info, nil
}

// ListUnits returns all units of a property ordered by label
func (s *Service) ListUnits(ctx context.Context, companyID, propertyID uuid.UUID) ([]UnitInfo, error) {
	if _, err := s.findProperty(ctx, companyID, propertyID); err != nil {
		return nil, err
	}

	units, err := s.unitRepo.ListByProperty(ctx, propertyID)
	if err != nil {
		s.logger.Error("Failed to list units", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list units")
	}

	items := make([]UnitInfo, 0, len(units))
	for _, unit := range units {
		items = append(items, toUnitInfo(unit))
	}
	return items, nil
}

// DeleteUnit removes a unit from a property
func (s *Service) DeleteUnit(ctx context.Context, companyID, propertyID, unitID uuid.UUID) error {
	if _, err := s.findProperty(ctx, companyID, propertyID); err != nil {
		return err
	}

	unit, err := s.unitRepo.FindByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("UNIT_NOT_FOUND", "Unit not found")
		}
		return err
	}
	if unit.PropertyID != propertyID {
		return shared.NewDomainError("UNIT_NOT_FOUND", "Unit not found")
	}
	return s.unitRepo.Delete(ctx, unitID)
}

// CreateVendor adds an emergency vendor to the directory
func (s *Service) CreateVendor(ctx context.Context, input CreateVendorInput) (*VendorInfo, error) {
	vendor, err := property.NewEmergencyVendor(input.CompanyID, input.Name, input.Category, input.Phone)
	if err != nil {
		return nil, err
	}
	if input.Email != "" || input.Notes != "" {
		if err := vendor.Update(input.Name, input.Category, input.Phone, input.Email, input.Notes); err != nil {
			return nil, err
		}
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		s.logger.Error("Failed to save vendor", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create vendor")
	}

	info := toVendorInfo(vendor)
	return &info, nil
}

// GetVendor returns a single emergency vendor by ID
func (s *Service) GetVendor(ctx context.Context, companyID, vendorID uuid.UUID) (*VendorInfo, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, companyID, vendorID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("VENDOR_NOT_FOUND", "Vendor not found")
		}
		return nil, err
	}
	info := toVendorInfo(vendor)
	return &info, nil
}

// ListVendors returns a paginated list of emergency vendors
func (s *Service) ListVendors(ctx context.Context, input ListVendorsInput) (shared.Paginated[VendorInfo], error) {
	filter := property.NewVendorFilter(input.CompanyID)
	filter.Filter = input.Filter
	filter.Active = input.Active
	if input.Category != "" {
		category, err := property.ParseVendorCategory(input.Category)
		if err != nil {
			return shared.Paginated[VendorInfo]{}, err
		}
		filter.Category = &category
	}

	page, err := s.vendorRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list vendors", zap.Error(err))
		return shared.Paginated[VendorInfo]{}, shared.NewDomainError("INTERNAL_ERROR", "Failed to list vendors")
	}

	items := make([]VendorInfo, 0, len(page.Items))
	for _, vendor := range page.Items {
		items = append(items, toVendorInfo(vendor))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// UpdateVendor changes a vendor's contact details and active flag
func (s *Service) UpdateVendor(ctx context.Context, input UpdateVendorInput) (*VendorInfo, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, input.CompanyID, input.VendorID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("VENDOR_NOT_FOUND", "Vendor not found")
		}
		return nil, err
	}

	if err := vendor.Update(input.Name, input.Category, input.Phone, input.Email, input.Notes); err != nil {
		return nil, err
	}
	if input.Active != nil {
		if *input.Active {
			vendor.Activate()
		} else {
			vendor.Deactivate()
		}
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		s.logger.Error("Failed to save vendor", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update vendor")
	}

	info := toVendorInfo(vendor)
	return &info, nil
}

// DeleteVendor removes an emergency vendor
func (s *Service) DeleteVendor(ctx context.Context, companyID, vendorID uuid.UUID) error {
	if err := s.vendorRepo.Delete(ctx, companyID, vendorID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("VENDOR_NOT_FOUND", "Vendor not found")
		}
		return err
	}
	return nil
}

func (s *Service) findProperty(ctx context.Context, companyID, propertyID uuid.UUID) (*property.Property, error) {
	prop, err := s.propertyRepo.FindByID(ctx, companyID, propertyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PROPERTY_NOT_FOUND", "Property not found")
		}
		return nil, err
	}
	return prop, nil
}

func toPropertyInfo(prop *property.Property) PropertyInfo {
	return PropertyInfo{
		ID:        prop.ID,
		Name:      prop.Name,
		Address:   prop.Address,
		City:      prop.City,
		State:     prop.State,
		Zip:       prop.Zip,
		UnitCount: prop.UnitCount,
		Notes:     prop.Notes,
	}
}

func toUnitInfo(unit *property.PropertyUnit) UnitInfo {
	return UnitInfo{
		ID:         unit.ID,
		PropertyID: unit.PropertyID,
		Label:      unit.Label,
		Occupied:   unit.Occupied,
		TenantName: unit.TenantName,
	}
}

func toVendorInfo(vendor *property.EmergencyVendor) VendorInfo {
	return VendorInfo{
		ID:       vendor.ID,
		Name:     vendor.Name,
		Category: string(vendor.Category),
		Phone:    vendor.Phone,
		Email:    vendor.Email,
		Notes:    vendor.Notes,
		Active:   vendor.Active,
	}
}
