package workforce

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/identity"
	"github.com/dispatchiq/backend/internal/domain/property"
	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/domain/workforce"
)

// Service manages the technician roster
type Service struct {
	technicianRepo workforce.TechnicianRepository
	propertyRepo   property.PropertyRepository
	logger         *zap.Logger
}

// NewService creates a new workforce service
func NewService(
	technicianRepo workforce.TechnicianRepository,
	propertyRepo property.PropertyRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		technicianRepo: technicianRepo,
		propertyRepo:   propertyRepo,
		logger:         logger,
	}
}

// CreateTechnician adds a technician to the roster
func (s *Service) CreateTechnician(ctx context.Context, input CreateTechnicianInput) (*TechnicianInfo, error) {
	tech, err := workforce.NewTechnician(input.CompanyID, input.FullName, input.Phone, input.Trade)
	if err != nil {
		return nil, err
	}
	if input.Email != "" || input.Trade != "" {
		if err := tech.UpdateContact(input.FullName, input.Phone, input.Email, input.Trade); err != nil {
			return nil, err
		}
	}
	if err := s.applyShift(tech, input.ShiftStart, input.ShiftEnd); err != nil {
		return nil, err
	}
	if input.MeritPercent != nil {
		if err := tech.SetMeritPercent(*input.MeritPercent); err != nil {
			return nil, err
		}
	}
	if input.DefaultProperty != nil {
		if err := s.checkPropertyOwnership(ctx, input.CompanyID, *input.DefaultProperty); err != nil {
			return nil, err
		}
		tech.SetDefaultProperty(input.DefaultProperty)
	}
	if err := s.technicianRepo.Save(ctx, tech); err != nil {
		s.logger.Error("Failed to save technician", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create technician")
	}

	s.logger.Info("Technician created",
		zap.String("technician_id", tech.ID.String()),
		zap.String("company_id", input.CompanyID.String()))

	info := toTechnicianInfo(tech)
	return &info, nil
}

// GetTechnician returns a single technician by ID
func (s *Service) GetTechnician(ctx context.Context, companyID, technicianID uuid.UUID) (*TechnicianInfo, error) {
	tech, err := s.findTechnician(ctx, companyID, technicianID)
	if err != nil {
		return nil, err
	}
	info := toTechnicianInfo(tech)
	return &info, nil
}

// ListTechnicians returns a paginated list of technicians
func (s *Service) ListTechnicians(ctx context.Context, input ListTechniciansInput) (shared.Paginated[TechnicianInfo], error) {
	filter := workforce.NewTechnicianFilter(input.CompanyID)
	filter.Filter = input.Filter
	filter.Keyword = input.Keyword
	filter.Active = input.Active
	if input.Availability != "" {
		availability, err := workforce.ParseAvailability(input.Availability)
		if err != nil {
			return shared.Paginated[TechnicianInfo]{}, err
		}
		filter.Availability = &availability
	}

	page, err := s.technicianRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list technicians", zap.Error(err))
		return shared.Paginated[TechnicianInfo]{}, shared.NewDomainError("INTERNAL_ERROR", "Failed to list technicians")
	}

	items := make([]TechnicianInfo, 0, len(page.Items))
	for _, tech := range page.Items {
		items = append(items, toTechnicianInfo(tech))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// UpdateTechnician changes a technician's details
func (s *Service) UpdateTechnician(ctx context.Context, input UpdateTechnicianInput) (*TechnicianInfo, error) {
	tech, err := s.findTechnician(ctx, input.CompanyID, input.TechnicianID)
	if err != nil {
		return nil, err
	}

	if err := tech.UpdateContact(input.FullName, input.Phone, input.Email, input.Trade); err != nil {
		return nil, err
	}
	if err := s.applyShift(tech, input.ShiftStart, input.ShiftEnd); err != nil {
		return nil, err
	}
	if input.MeritPercent != nil {
		if err := tech.SetMeritPercent(*input.MeritPercent); err != nil {
			return nil, err
		}
	}
	switch {
	case input.ClearDefault:
		tech.SetDefaultProperty(nil)
	case input.DefaultProperty != nil:
		if err := s.checkPropertyOwnership(ctx, input.CompanyID, *input.DefaultProperty); err != nil {
			return nil, err
		}
		tech.SetDefaultProperty(input.DefaultProperty)
	}
	if input.Active != nil {
		if *input.Active {
			tech.Activate()
		} else {
			tech.Deactivate()
		}
	}
	if err := s.technicianRepo.Save(ctx, tech); err != nil {
		s.logger.Error("Failed to save technician", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update technician")
	}

	info := toTechnicianInfo(tech)
	return &info, nil
}

// SetAvailability transitions a technician's dispatch availability
func (s *Service) SetAvailability(ctx context.Context, input SetAvailabilityInput) (*TechnicianInfo, error) {
	tech, err := s.findTechnician(ctx, input.CompanyID, input.TechnicianID)
	if err != nil {
		return nil, err
	}

	availability, err := workforce.ParseAvailability(input.Availability)
	if err != nil {
		return nil, err
	}
	if err := tech.SetAvailability(availability); err != nil {
		return nil, err
	}
	if err := s.technicianRepo.Save(ctx, tech); err != nil {
		s.logger.Error("Failed to save technician", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update availability")
	}

	info := toTechnicianInfo(tech)
	return &info, nil
}

// DeleteTechnician removes a technician from the roster
func (s *Service) DeleteTechnician(ctx context.Context, companyID, technicianID uuid.UUID) error {
	if err := s.technicianRepo.Delete(ctx, companyID, technicianID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("TECHNICIAN_NOT_FOUND", "Technician not found")
		}
		return err
	}
	s.logger.Info("Technician deleted", zap.String("technician_id", technicianID.String()))
	return nil
}

func (s *Service) findTechnician(ctx context.Context, companyID, technicianID uuid.UUID) (*workforce.Technician, error) {
	tech, err := s.technicianRepo.FindByID(ctx, companyID, technicianID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TECHNICIAN_NOT_FOUND", "Technician not found")
		}
		return nil, err
	}
	return tech, nil
}

func (s *Service) applyShift(tech *workforce.Technician, start, end string) error {
	if start == "" && end == "" {
		return nil
	}
	normalizedStart, err := identity.NormalizeClockTime(start)
	if err != nil {
		return err
	}
	normalizedEnd, err := identity.NormalizeClockTime(end)
	if err != nil {
		return err
	}
	tech.SetShift(normalizedStart, normalizedEnd)
	return nil
}

func (s *Service) checkPropertyOwnership(ctx context.Context, companyID, propertyID uuid.UUID) error {
	if _, err := s.propertyRepo.FindByID(ctx, companyID, propertyID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("UNKNOWN_PROPERTY_REFERENCE",
				"Default property does not belong to this company")
		}
		return err
	}
	return nil
}

func toTechnicianInfo(tech *workforce.Technician) TechnicianInfo {
	return TechnicianInfo{
		ID:                tech.ID,
		FullName:          tech.FullName,
		Phone:             tech.Phone,
		Email:             tech.Email,
		Trade:             tech.Trade,
		ShiftStart:        tech.ShiftStart,
		ShiftEnd:          tech.ShiftEnd,
		MeritPercent:      tech.MeritPercent,
		Availability:      string(tech.Availability),
		DefaultPropertyID: tech.DefaultPropertyID,
		Active:            tech.Active,
	}
}
