package onboarding

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/identity"
	"github.com/dispatchiq/backend/internal/domain/property"
	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/domain/workforce"
)

// placeholderValues are junk identifiers intake forms send for "not
// set". They are treated as absent rather than rejected.
var placeholderValues = map[string]struct{}{
	"":          {},
	"string":    {},
	"null":      {},
	"none":      {},
	"undefined": {},
	"all":       {},
}

// cleanIdentifier strips placeholder values from optional references
func cleanIdentifier(value string) string {
	trimmed := strings.TrimSpace(value)
	if _, ok := placeholderValues[strings.ToLower(trimmed)]; ok {
		return ""
	}
	return trimmed
}

// Service runs the one-shot company onboarding flow
type Service struct {
	userRepo       identity.UserRepository
	companyRepo    identity.CompanyRepository
	propertyRepo   property.PropertyRepository
	technicianRepo workforce.TechnicianRepository
	vendorRepo     property.VendorRepository
	events         shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new onboarding service
func NewService(
	userRepo identity.UserRepository,
	companyRepo identity.CompanyRepository,
	propertyRepo property.PropertyRepository,
	technicianRepo workforce.TechnicianRepository,
	vendorRepo property.VendorRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		userRepo:       userRepo,
		companyRepo:    companyRepo,
		propertyRepo:   propertyRepo,
		technicianRepo: technicianRepo,
		vendorRepo:     vendorRepo,
		events:         events,
		logger:         logger,
	}
}

// Complete performs the entire initial setup in one request: company
// profile, schedule, intake policy, properties, technicians and
// emergency vendors. It can run only once per company.
func (s *Service) Complete(ctx context.Context, input CompleteInput) (*CompleteResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	company, err := s.resolveCompany(ctx, user, input.CompanyName)
	if err != nil {
		return nil, err
	}
	if company.OnboardingComplete {
		return nil, shared.NewDomainError("ONBOARDING_ALREADY_COMPLETE",
			"Onboarding has already been completed for this company")
	}
	if err := s.ensureEmptyCompany(ctx, company.ID); err != nil {
		return nil, err
	}

	if err := company.ConfigureSchedule(cleanIdentifier(input.Timezone), input.WorkdayStart, input.WorkdayEnd); err != nil {
		return nil, err
	}
	if err := company.ConfigureIntake(identity.IntakeMethod(cleanIdentifier(input.IntakeMethod)),
		input.AfterHoursOnCall, identity.OnCallRotation(cleanIdentifier(input.OnCallRotation)), input.OnCallPhone); err != nil {
		return nil, err
	}
	company.ConfigureDispatch(
		boolOrDefault(input.AutoAssign, true),
		boolOrDefault(input.CollectPTE, true),
		boolOrDefault(input.CollectWindow, true))

	adminCreated, err := s.createOrLinkAdmin(ctx, user, company.ID, input.AdminAccount)
	if err != nil {
		return nil, err
	}

	// Properties are created first so technicians can reference them by
	// name within the same request.
	propertyByName := make(map[string]uuid.UUID, len(input.Properties))
	for _, in := range input.Properties {
		prop, err := property.NewProperty(company.ID, in.Name, in.Address)
		if err != nil {
			return nil, err
		}
		prop.UpdateDetails(in.Address, in.City, in.State, in.Zip, in.Notes)
		if err := prop.SetUnitCount(in.UnitCount); err != nil {
			return nil, err
		}
		if err := s.propertyRepo.Save(ctx, prop); err != nil {
			s.logger.Error("Failed to save onboarding property", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create property")
		}
		propertyByName[strings.ToLower(prop.Name)] = prop.ID
	}

	for _, in := range input.Technicians {
		tech, err := workforce.NewTechnician(company.ID, in.FullName, in.Phone, in.Trade)
		if err != nil {
			return nil, err
		}
		tech.Email = strings.TrimSpace(in.Email)
		if in.ShiftStart != "" || in.ShiftEnd != "" {
			start, err := identity.NormalizeClockTime(in.ShiftStart)
			if err != nil {
				return nil, err
			}
			end, err := identity.NormalizeClockTime(in.ShiftEnd)
			if err != nil {
				return nil, err
			}
			tech.SetShift(start, end)
		}
		if in.MeritPercent != nil {
			if err := tech.SetMeritPercent(*in.MeritPercent); err != nil {
				return nil, err
			}
		}
		propertyID, err := s.resolveDefaultProperty(ctx, company.ID, in.DefaultProperty, propertyByName)
		if err != nil {
			return nil, err
		}
		tech.SetDefaultProperty(propertyID)
		if err := s.technicianRepo.Save(ctx, tech); err != nil {
			s.logger.Error("Failed to save onboarding technician", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create technician")
		}
	}

	for _, in := range input.Vendors {
		vendor, err := property.NewEmergencyVendor(company.ID, in.Name, in.Category, in.Phone)
		if err != nil {
			return nil, err
		}
		vendor.Email = strings.TrimSpace(in.Email)
		if err := s.vendorRepo.Save(ctx, vendor); err != nil {
			s.logger.Error("Failed to save onboarding vendor", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create vendor")
		}
	}

	if err := company.CompleteOnboarding(); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		s.logger.Error("Failed to save company after onboarding", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to complete onboarding")
	}
	s.publishEvents(ctx, company)

	s.logger.Info("Onboarding completed",
		zap.String("company_id", company.ID.String()),
		zap.Int("properties", len(input.Properties)),
		zap.Int("technicians", len(input.Technicians)),
		zap.Int("vendors", len(input.Vendors)))

	return &CompleteResult{
		CompanyID:          company.ID,
		PropertiesCreated:  len(input.Properties),
		TechniciansCreated: len(input.Technicians),
		VendorsCreated:     len(input.Vendors),
		AdminCreated:       adminCreated,
	}, nil
}

// createOrLinkAdmin provisions the optional extra admin account. An
// address matching the acting user is skipped, an existing unattached
// user is linked to the company, anyone else is created fresh.
func (s *Service) createOrLinkAdmin(ctx context.Context, actor *identity.User, companyID uuid.UUID, input *AdminAccountInput) (bool, error) {
	if input == nil {
		return false, nil
	}
	email := identity.NormalizeEmail(input.Email)
	if email == "" || strings.EqualFold(email, actor.Email) {
		return false, nil
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		if existing.CompanyID == nil {
			if err := existing.AssignCompany(companyID); err != nil {
				return false, err
			}
			if err := s.userRepo.Save(ctx, existing); err != nil {
				s.logger.Error("Failed to link admin to company", zap.Error(err))
				return false, shared.NewDomainError("INTERNAL_ERROR", "Failed to link admin account")
			}
		} else if *existing.CompanyID != companyID {
			return false, shared.NewDomainError("EMAIL_TAKEN",
				"Admin email already belongs to another company")
		}
		return false, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return false, err
	}

	admin, err := identity.NewUser(email, input.Password, input.FullName)
	if err != nil {
		return false, err
	}
	if err := admin.AssignCompany(companyID); err != nil {
		return false, err
	}
	if err := s.userRepo.Save(ctx, admin); err != nil {
		s.logger.Error("Failed to create admin account", zap.Error(err))
		return false, shared.NewDomainError("INTERNAL_ERROR", "Failed to create admin account")
	}
	s.publishEvents(ctx, admin)
	return true, nil
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

// statusPageSize bounds the summary lists in the status view. Companies
// fresh out of onboarding stay well under it.
const statusPageSize = 200

// Status reports the current onboarding state for the user's company,
// including summaries of everything the setup flow created.
func (s *Service) Status(ctx context.Context, input StatusInput) (*StatusResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if user.CompanyID == nil {
		return &StatusResult{}, nil
	}

	company, err := s.companyRepo.FindByID(ctx, *user.CompanyID)
	if err != nil {
		return nil, err
	}

	propertyFilter := property.NewPropertyFilter(company.ID)
	propertyFilter.PageSize = statusPageSize
	properties, err := s.propertyRepo.List(ctx, propertyFilter)
	if err != nil {
		return nil, err
	}
	propertyNames := make(map[uuid.UUID]string, len(properties.Items))
	propertySummaries := make([]PropertySummary, 0, len(properties.Items))
	for _, prop := range properties.Items {
		propertyNames[prop.ID] = prop.Name
		propertySummaries = append(propertySummaries, PropertySummary{
			ID:        prop.ID,
			Name:      prop.Name,
			Address:   prop.Address,
			UnitCount: prop.UnitCount,
		})
	}

	technicianFilter := workforce.NewTechnicianFilter(company.ID)
	technicianFilter.PageSize = statusPageSize
	technicians, err := s.technicianRepo.List(ctx, technicianFilter)
	if err != nil {
		return nil, err
	}
	technicianSummaries := make([]TechnicianSummary, 0, len(technicians.Items))
	for _, tech := range technicians.Items {
		summary := TechnicianSummary{
			ID:       tech.ID,
			FullName: tech.FullName,
			Trade:    tech.Trade,
		}
		if tech.DefaultPropertyID != nil {
			summary.DefaultPropertyName = propertyNames[*tech.DefaultPropertyID]
		}
		technicianSummaries = append(technicianSummaries, summary)
	}

	vendorFilter := property.NewVendorFilter(company.ID)
	vendorFilter.PageSize = statusPageSize
	vendors, err := s.vendorRepo.List(ctx, vendorFilter)
	if err != nil {
		return nil, err
	}
	vendorSummaries := make([]VendorSummary, 0, len(vendors.Items))
	for _, vendor := range vendors.Items {
		vendorSummaries = append(vendorSummaries, VendorSummary{
			ID:       vendor.ID,
			Name:     vendor.Name,
			Category: string(vendor.Category),
			Phone:    vendor.Phone,
		})
	}

	return &StatusResult{
		CompanyID:        &company.ID,
		CompanyName:      company.Name,
		Timezone:         company.Timezone,
		TimezoneLabel:    identity.TimezoneLabel(company.Timezone),
		WorkdayStart:     company.WorkdayStart,
		WorkdayEnd:       company.WorkdayEnd,
		AutoAssign:       company.AutoAssign,
		IntakeMethod:     string(company.IntakeMethod),
		CollectPTE:       company.CollectPTE,
		CollectWindow:    company.CollectWindow,
		AfterHoursOnCall: company.AfterHoursOnCall,
		OnCallRotation:   string(company.OnCallRotation),
		OnCallPhone:      company.OnCallPhone,
		PropertyCount:    properties.Total,
		TechnicianCount:  technicians.Total,
		VendorCount:      vendors.Total,
		Properties:       propertySummaries,
		Technicians:      technicianSummaries,
		Vendors:          vendorSummaries,
		Completed:        company.OnboardingComplete,
		CompletedAt:      company.OnboardedAt,
	}, nil
}

// resolveCompany returns the user's company, creating one when the
// user signed up but never started onboarding.
func (s *Service) resolveCompany(ctx context.Context, user *identity.User, companyName string) (*identity.Company, error) {
	if user.CompanyID != nil {
		return s.companyRepo.FindByID(ctx, *user.CompanyID)
	}

	company, err := identity.NewCompany(companyName, user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		s.logger.Error("Failed to create company", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create company")
	}
	if err := user.AssignCompany(company.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to attach user to company", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create company")
	}
	s.publishEvents(ctx, company)
	return company, nil
}

// ensureEmptyCompany rejects reruns when operational records already exist
func (s *Service) ensureEmptyCompany(ctx context.Context, companyID uuid.UUID) error {
	propertyFilter := property.NewPropertyFilter(companyID)
	propertyFilter.PageSize = 1
	properties, err := s.propertyRepo.List(ctx, propertyFilter)
	if err != nil {
		return err
	}
	technicianCount, err := s.technicianRepo.CountByCompany(ctx, companyID)
	if err != nil {
		return err
	}
	vendorFilter := property.NewVendorFilter(companyID)
	vendorFilter.PageSize = 1
	vendors, err := s.vendorRepo.List(ctx, vendorFilter)
	if err != nil {
		return err
	}
	if properties.Total > 0 || technicianCount > 0 || vendors.Total > 0 {
		return shared.NewDomainError("ONBOARDING_ALREADY_COMPLETE",
			"Company already has operational records")
	}
	return nil
}

// resolveDefaultProperty resolves a technician's default property from
// a UUID or a property name used earlier in the same request.
func (s *Service) resolveDefaultProperty(ctx context.Context, companyID uuid.UUID, reference string, created map[string]uuid.UUID) (*uuid.UUID, error) {
	reference = cleanIdentifier(reference)
	if reference == "" {
		return nil, nil
	}

	if id, err := uuid.Parse(reference); err == nil {
		if _, err := s.propertyRepo.FindByID(ctx, companyID, id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("UNKNOWN_PROPERTY_REFERENCE",
					"Default property does not belong to this company")
			}
			return nil, err
		}
		return &id, nil
	}

	if id, ok := created[strings.ToLower(reference)]; ok {
		return &id, nil
	}
	prop, err := s.propertyRepo.FindByName(ctx, companyID, reference)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNKNOWN_PROPERTY_REFERENCE",
				"Default property "+reference+" was not found")
		}
		return nil, err
	}
	return &prop.ID, nil
}

func (s *Service) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish onboarding events", zap.Error(err))
	}
	aggregate.ClearDomainEvents()
}
