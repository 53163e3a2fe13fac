package workorder

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/catalog"
	"github.com/dispatchiq/backend/internal/domain/property"
	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/domain/workforce"
	"github.com/dispatchiq/backend/internal/domain/workorder"
	"github.com/dispatchiq/backend/internal/infrastructure/storage"
)

const evidenceURLExpiry = 15 * time.Minute

// Service orchestrates the work order lifecycle from intake to
// completion, including job evidence uploads.
type Service struct {
	workOrderRepo   workorder.WorkOrderRepository
	evidenceRepo    workorder.EvidenceRepository
	propertyRepo    property.PropertyRepository
	unitRepo        property.UnitRepository
	technicianRepo  workforce.TechnicianRepository
	serviceTypeRepo catalog.ServiceTypeRepository
	objectStorage   storage.ObjectStorage
	events          shared.EventPublisher
	logger          *zap.Logger
}

// NewService creates a new work order service
func NewService(
	workOrderRepo workorder.WorkOrderRepository,
	evidenceRepo workorder.EvidenceRepository,
	propertyRepo property.PropertyRepository,
	unitRepo property.UnitRepository,
	technicianRepo workforce.TechnicianRepository,
	serviceTypeRepo catalog.ServiceTypeRepository,
	objectStorage storage.ObjectStorage,
	events shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		workOrderRepo:   workOrderRepo,
		evidenceRepo:    evidenceRepo,
		propertyRepo:    propertyRepo,
		unitRepo:        unitRepo,
		technicianRepo:  technicianRepo,
		serviceTypeRepo: serviceTypeRepo,
		objectStorage:   objectStorage,
		events:          events,
		logger:          logger,
	}
}

// Options returns the company's properties with their units, for
// populating intake forms.
func (s *Service) Options(ctx context.Context, companyID uuid.UUID) ([]PropertyOption, error) {
	filter := property.NewPropertyFilter(companyID)
	filter.PageSize = 100
	filter.SortBy = "name"
	filter.SortDir = "asc"

	page, err := s.propertyRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list properties for options", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load intake options")
	}

	options := make([]PropertyOption, 0, len(page.Items))
	for _, prop := range page.Items {
		units, err := s.unitRepo.ListByProperty(ctx, prop.ID)
		if err != nil {
			return nil, err
		}
		option := PropertyOption{ID: prop.ID, Name: prop.Name, Units: make([]UnitOption, 0, len(units))}
		for _, unit := range units {
			option.Units = append(option.Units, UnitOption{ID: unit.ID, Label: unit.Label})
		}
		options = append(options, option)
	}
	return options, nil
}

// Create opens a work order. The property must belong to the company;
// a unit can be given by ID (must belong to the property) or by label,
// in which case it is created on first use. Giving a technician
// assigns the order immediately.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Info, error) {
	prop, err := s.propertyRepo.FindByID(ctx, input.CompanyID, input.PropertyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PROPERTY_NOT_FOUND", "Property not found")
		}
		return nil, err
	}

	priority, err := workorder.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	wo, err := workorder.NewWorkOrder(input.CompanyID, input.PropertyID, input.Issue, input.Description, priority)
	if err != nil {
		return nil, err
	}
	wo.ReportedBy = input.ReportedBy
	wo.SetIntakeDetails(input.PTE, input.PreferredWindow, input.TenantName, input.TenantPhone)

	unitID, unitLabel, err := s.resolveUnit(ctx, input.PropertyID, input.UnitID, input.UnitLabel)
	if err != nil {
		return nil, err
	}
	if unitID != nil {
		wo.SetUnit(*unitID, unitLabel)
	}

	if input.ServiceTypeID != nil {
		serviceType, err := s.serviceTypeRepo.FindByID(ctx, input.CompanyID, *input.ServiceTypeID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("SERVICE_TYPE_NOT_FOUND", "Service type not found")
			}
			return nil, err
		}
		wo.SetServiceType(serviceType.ID)
		// The service type's base rate seeds the payout unless the
		// caller set one explicitly.
		if input.PayoutAmount == nil {
			if err := wo.SetPayoutAmount(serviceType.BaseRate); err != nil {
				return nil, err
			}
		}
	}
	if input.PayoutAmount != nil {
		if err := wo.SetPayoutAmount(*input.PayoutAmount); err != nil {
			return nil, err
		}
	}

	if input.TechnicianID != nil {
		if err := s.checkTechnician(ctx, input.CompanyID, *input.TechnicianID); err != nil {
			return nil, err
		}
		if err := wo.Assign(*input.TechnicianID); err != nil {
			return nil, err
		}
	}

	if err := s.workOrderRepo.Save(ctx, wo); err != nil {
		s.logger.Error("Failed to save work order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create work order")
	}
	s.publishEvents(ctx, wo)

	s.logger.Info("Work order created",
		zap.String("work_order_id", wo.ID.String()),
		zap.String("priority", string(wo.Priority)),
		zap.String("status", string(wo.Status)))

	info := toInfo(wo, prop.Name)
	return &info, nil
}

// Get returns a single work order by ID
func (s *Service) Get(ctx context.Context, companyID, workOrderID uuid.UUID) (*Info, error) {
	wo, err := s.findWorkOrder(ctx, companyID, workOrderID)
	if err != nil {
		return nil, err
	}
	info := toInfo(wo, s.propertyName(ctx, companyID, wo.PropertyID))
	return &info, nil
}

// List returns a paginated list of work orders, newest first
func (s *Service) List(ctx context.Context, input ListInput) (shared.Paginated[Info], error) {
	filter := workorder.NewWorkOrderFilter(input.CompanyID)
	filter.Filter = input.Filter
	filter.PropertyID = input.PropertyID
	filter.TechnicianID = input.TechnicianID
	filter.Keyword = input.Keyword
	if input.Status != "" {
		status, err := workorder.ParseStatus(input.Status)
		if err != nil {
			return shared.Paginated[Info]{}, err
		}
		filter.Status = &status
	}
	if input.Priority != "" {
		priority, err := workorder.ParsePriority(input.Priority)
		if err != nil {
			return shared.Paginated[Info]{}, err
		}
		filter.Priority = &priority
	}

	page, err := s.workOrderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list work orders", zap.Error(err))
		return shared.Paginated[Info]{}, shared.NewDomainError("INTERNAL_ERROR", "Failed to list work orders")
	}

	names := make(map[uuid.UUID]string)
	items := make([]Info, 0, len(page.Items))
	for _, wo := range page.Items {
		if _, ok := names[wo.PropertyID]; !ok {
			names[wo.PropertyID] = s.propertyName(ctx, input.CompanyID, wo.PropertyID)
		}
		items = append(items, toInfo(wo, names[wo.PropertyID]))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// Update edits a work order's details and optionally reassigns it
func (s *Service) Update(ctx context.Context, input UpdateInput) (*Info, error) {
	wo, err := s.findWorkOrder(ctx, input.CompanyID, input.WorkOrderID)
	if err != nil {
		return nil, err
	}

	priority, err := workorder.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}
	if err := wo.UpdateDetails(input.Issue, input.Description, priority); err != nil {
		return nil, err
	}
	if input.PTE != nil || input.PreferredWindow != nil || input.TenantName != nil || input.TenantPhone != nil {
		pte, window, tenantName, tenantPhone := wo.PTE, wo.PreferredWindow, wo.TenantName, wo.TenantPhone
		if input.PTE != nil {
			pte = *input.PTE
		}
		if input.PreferredWindow != nil {
			window = *input.PreferredWindow
		}
		if input.TenantName != nil {
			tenantName = *input.TenantName
		}
		if input.TenantPhone != nil {
			tenantPhone = *input.TenantPhone
		}
		wo.SetIntakeDetails(pte, window, tenantName, tenantPhone)
	}
	if input.PayoutAmount != nil {
		if err := wo.SetPayoutAmount(*input.PayoutAmount); err != nil {
			return nil, err
		}
	}
	if input.TechnicianID != nil {
		if err := s.checkTechnician(ctx, input.CompanyID, *input.TechnicianID); err != nil {
			return nil, err
		}
		switch wo.Status {
		case workorder.StatusOpen:
			err = wo.Assign(*input.TechnicianID)
		case workorder.StatusAssigned:
			err = wo.Reassign(*input.TechnicianID)
		default:
			err = shared.NewDomainError("INVALID_STATE", "Cannot reassign a work order in this state")
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.workOrderRepo.Save(ctx, wo); err != nil {
		return nil, s.saveError(err, "Failed to update work order")
	}
	s.publishEvents(ctx, wo)

	info := toInfo(wo, s.propertyName(ctx, input.CompanyID, wo.PropertyID))
	return &info, nil
}

// Assign moves an open work order to assigned
func (s *Service) Assign(ctx context.Context, input AssignInput) (*Info, error) {
	wo, err := s.findWorkOrder(ctx, input.CompanyID, input.WorkOrderID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTechnician(ctx, input.CompanyID, input.TechnicianID); err != nil {
		return nil, err
	}
	if err := wo.Assign(input.TechnicianID); err != nil {
		return nil, err
	}
	if err := s.workOrderRepo.Save(ctx, wo); err != nil {
		return nil, s.saveError(err, "Failed to assign work order")
	}
	s.publishEvents(ctx, wo)

	s.logger.Info("Work order assigned",
		zap.String("work_order_id", wo.ID.String()),
		zap.String("technician_id", input.TechnicianID.String()))

	info := toInfo(wo, s.propertyName(ctx, input.CompanyID, wo.PropertyID))
	return &info, nil
}

// Start moves an assigned work order to in_progress
func (s *Service) Start(ctx context.Context, companyID, workOrderID uuid.UUID) (*Info, error) {
	return s.transition(ctx, companyID, workOrderID, (*workorder.WorkOrder).Start, "Failed to start work order")
}

// Complete finishes an in_progress work order and publishes the
// completion event consumed by the wallet context.
func (s *Service) Complete(ctx context.Context, companyID, workOrderID uuid.UUID) (*Info, error) {
	return s.transition(ctx, companyID, workOrderID, (*workorder.WorkOrder).Complete, "Failed to complete work order")
}

// Cancel aborts a work order from any non-terminal state
func (s *Service) Cancel(ctx context.Context, input CancelInput) (*Info, error) {
	wo, err := s.findWorkOrder(ctx, input.CompanyID, input.WorkOrderID)
	if err != nil {
		return nil, err
	}
	if err := wo.Cancel(input.Reason); err != nil {
		return nil, err
	}
	if err := s.workOrderRepo.Save(ctx, wo); err != nil {
		return nil, s.saveError(err, "Failed to cancel work order")
	}
	s.publishEvents(ctx, wo)

	info := toInfo(wo, s.propertyName(ctx, input.CompanyID, wo.PropertyID))
	return &info, nil
}

// AttachEvidence uploads an evidence file to object storage and records
// it against the work order.
func (s *Service) AttachEvidence(ctx context.Context, input AttachEvidenceInput) (*EvidenceInfo, error) {
	wo, err := s.findWorkOrder(ctx, input.CompanyID, input.WorkOrderID)
	if err != nil {
		return nil, err
	}
	if wo.Status == workorder.StatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot attach evidence to a cancelled work order")
	}

	kind := workorder.EvidenceKind(input.Kind)
	storageKey := fmt.Sprintf("evidence/%s/%s/%s%s",
		input.CompanyID, input.WorkOrderID, uuid.New(), path.Ext(input.FileName))

	evidence, err := workorder.NewJobEvidence(wo.ID, input.CompanyID, kind,
		storageKey, input.FileName, input.ContentType, int64(len(input.Data)), input.UploadedBy)
	if err != nil {
		return nil, err
	}
	evidence.SetCaption(input.Caption)

	if err := s.objectStorage.Upload(ctx, storageKey, input.Data, input.ContentType); err != nil {
		s.logger.Error("Failed to upload evidence", zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to store evidence file")
	}
	if err := s.evidenceRepo.Save(ctx, evidence); err != nil {
		s.logger.Error("Failed to save evidence record", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record evidence")
	}

	info := toEvidenceInfo(evidence)
	return &info, nil
}

// ListEvidence returns all evidence of a work order, oldest first
func (s *Service) ListEvidence(ctx context.Context, companyID, workOrderID uuid.UUID) ([]EvidenceInfo, error) {
	if _, err := s.findWorkOrder(ctx, companyID, workOrderID); err != nil {
		return nil, err
	}

	records, err := s.evidenceRepo.ListByWorkOrder(ctx, companyID, workOrderID)
	if err != nil {
		s.logger.Error("Failed to list evidence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list evidence")
	}

	items := make([]EvidenceInfo, 0, len(records))
	for _, evidence := range records {
		items = append(items, toEvidenceInfo(evidence))
	}
	return items, nil
}

// EvidenceDownloadURL returns a presigned download URL for an evidence file
func (s *Service) EvidenceDownloadURL(ctx context.Context, companyID, evidenceID uuid.UUID) (*EvidenceURLResult, error) {
	evidence, err := s.evidenceRepo.FindByID(ctx, companyID, evidenceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("EVIDENCE_NOT_FOUND", "Evidence not found")
		}
		return nil, err
	}

	url, expiresAt, err := s.objectStorage.GenerateDownloadURL(ctx, evidence.StorageKey, evidenceURLExpiry)
	if err != nil {
		s.logger.Error("Failed to generate evidence download URL", zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to generate download URL")
	}
	return &EvidenceURLResult{URL: url, ExpiresAt: expiresAt}, nil
}

func (s *Service) transition(ctx context.Context, companyID, workOrderID uuid.UUID, op func(*workorder.WorkOrder) error, failMsg string) (*Info, error) {
	wo, err := s.findWorkOrder(ctx, companyID, workOrderID)
	if err != nil {
		return nil, err
	}
	if err := op(wo); err != nil {
		return nil, err
	}
	if err := s.workOrderRepo.Save(ctx, wo); err != nil {
		return nil, s.saveError(err, failMsg)
	}
	s.publishEvents(ctx, wo)

	info := toInfo(wo, s.propertyName(ctx, companyID, wo.PropertyID))
	return &info, nil
}

func (s *Service) findWorkOrder(ctx context.Context, companyID, workOrderID uuid.UUID) (*workorder.WorkOrder, error) {
	wo, err := s.workOrderRepo.FindByID(ctx, companyID, workOrderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("WORK_ORDER_NOT_FOUND", "Work order not found")
		}
		return nil, err
	}
	return wo, nil
}

// propertyName looks up a property's name for display. A lookup
// failure leaves the name empty rather than failing the operation.
func (s *Service) propertyName(ctx context.Context, companyID, propertyID uuid.UUID) string {
	prop, err := s.propertyRepo.FindByID(ctx, companyID, propertyID)
	if err != nil {
		s.logger.Warn("Failed to resolve property name",
			zap.String("property_id", propertyID.String()), zap.Error(err))
		return ""
	}
	return prop.Name
}

// resolveUnit resolves a unit reference by ID or upserts one by label,
// returning the unit's ID and label.
func (s *Service) resolveUnit(ctx context.Context, propertyID uuid.UUID, unitID *uuid.UUID, label string) (*uuid.UUID, string, error) {
	if unitID != nil {
		unit, err := s.unitRepo.FindByID(ctx, *unitID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, "", shared.NewDomainError("UNIT_NOT_FOUND", "Unit not found")
			}
			return nil, "", err
		}
		if unit.PropertyID != propertyID {
			return nil, "", shared.NewDomainError("UNIT_NOT_FOUND", "Unit does not belong to this property")
		}
		return &unit.ID, unit.Label, nil
	}
	if label == "" {
		return nil, "", nil
	}

	unit, err := s.unitRepo.FindByLabel(ctx, propertyID, label)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, "", err
		}
		unit, err = property.NewPropertyUnit(propertyID, label)
		if err != nil {
			return nil, "", err
		}
		if err := s.unitRepo.Save(ctx, unit); err != nil {
			s.logger.Error("Failed to save unit", zap.Error(err))
			return nil, "", shared.NewDomainError("INTERNAL_ERROR", "Failed to register unit")
		}
	}
	return &unit.ID, unit.Label, nil
}

func (s *Service) checkTechnician(ctx context.Context, companyID, technicianID uuid.UUID) error {
	tech, err := s.technicianRepo.FindByID(ctx, companyID, technicianID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("TECHNICIAN_NOT_FOUND", "Technician not found")
		}
		return err
	}
	if !tech.Active {
		return shared.NewDomainError("TECHNICIAN_INACTIVE", "Technician is not active")
	}
	return nil
}

func (s *Service) saveError(err error, message string) error {
	if errors.Is(err, shared.ErrConcurrencyConflict) {
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "Work order was modified concurrently, retry the operation")
	}
	s.logger.Error("Failed to save work order", zap.Error(err))
	return shared.NewDomainError("INTERNAL_ERROR", message)
}

func (s *Service) publishEvents(ctx context.Context, wo *workorder.WorkOrder) {
	events := wo.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish work order events", zap.Error(err))
	}
	wo.ClearDomainEvents()
}

func toInfo(wo *workorder.WorkOrder, propertyName string) Info {
	return Info{
		ID:              wo.ID,
		PropertyID:      wo.PropertyID,
		PropertyName:    propertyName,
		UnitID:          wo.UnitID,
		UnitLabel:       wo.UnitLabel,
		ServiceType:     wo.ServiceTypeID,
		Issue:           wo.Issue,
		Description:     wo.Description,
		Priority:        string(wo.Priority),
		Status:          string(wo.Status),
		PTE:             wo.PTE,
		PreferredWindow: wo.PreferredWindow,
		TenantName:      wo.TenantName,
		TenantPhone:     wo.TenantPhone,
		TechnicianID:    wo.TechnicianID,
		PayoutAmount:    wo.PayoutAmount,
		ReportedBy:      wo.ReportedBy,
		AssignedAt:      wo.AssignedAt,
		StartedAt:       wo.StartedAt,
		CompletedAt:     wo.CompletedAt,
		CancelledAt:     wo.CancelledAt,
		CancelReason:    wo.CancelReason,
		CreatedAt:       wo.CreatedAt,
	}
}

func toEvidenceInfo(evidence *workorder.JobEvidence) EvidenceInfo {
	return EvidenceInfo{
		ID:          evidence.ID,
		WorkOrderID: evidence.WorkOrderID,
		Kind:        string(evidence.Kind),
		FileName:    evidence.FileName,
		ContentType: evidence.ContentType,
		SizeBytes:   evidence.SizeBytes,
		Caption:     evidence.Caption,
		UploadedBy:  evidence.UploadedBy,
		CreatedAt:   evidence.CreatedAt,
	}
}
