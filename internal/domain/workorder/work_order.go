package workorder

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// Status is the lifecycle state of a work order
type Status string

const (
	StatusOpen       Status = "open"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Priority classifies how urgently a work order must be handled
type Priority string

const (
	PriorityRoutine   Priority = "routine"
	PriorityEmergency Priority = "emergency"
)

// ParseStatus normalizes and validates a status value
func ParseStatus(value string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusOpen, "":
		return StatusOpen, nil
	case StatusAssigned:
		return StatusAssigned, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", shared.NewDomainError("INVALID_STATUS",
			"Status must be open, assigned, in_progress, completed or cancelled")
	}
}

// ParsePriority normalizes and validates a priority value.
// An empty value defaults to routine.
func ParsePriority(value string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(value))) {
	case PriorityRoutine, "":
		return PriorityRoutine, nil
	case PriorityEmergency:
		return PriorityEmergency, nil
	default:
		return "", shared.NewDomainError("INVALID_PRIORITY", "Priority must be routine or emergency")
	}
}

// IsTerminal reports whether the status allows no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// MinIssueLength is the minimum length of the reported issue text
const MinIssueLength = 3

// WorkOrder is a maintenance job at a property. It moves through
// open -> assigned -> in_progress -> completed, and may be cancelled
// from any non-terminal state. UnitLabel snapshots the unit's label at
// intake so the order stays readable even if the unit is renamed.
type WorkOrder struct {
	shared.CompanyAggregateRoot
	PropertyID      uuid.UUID
	UnitID          *uuid.UUID
	UnitLabel       string
	ServiceTypeID   *uuid.UUID
	Issue           string
	Description     string
	Priority        Priority
	Status          Status
	PTE             bool
	PreferredWindow string
	TenantName      string
	TenantPhone     string
	TechnicianID    *uuid.UUID
	PayoutAmount    decimal.Decimal
	ReportedBy      string
	AssignedAt      *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string
}

func validateIssue(issue string) (string, error) {
	issue = strings.TrimSpace(issue)
	if len(issue) < MinIssueLength {
		return "", shared.NewDomainError("INVALID_INPUT", "Issue must be at least 3 characters")
	}
	return issue, nil
}

// NewWorkOrder creates an open work order at a property
func NewWorkOrder(companyID, propertyID uuid.UUID, issue, description string, priority Priority) (*WorkOrder, error) {
	issue, err := validateIssue(issue)
	if err != nil {
		return nil, err
	}
	switch priority {
	case PriorityRoutine, PriorityEmergency:
	case "":
		priority = PriorityRoutine
	default:
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Priority must be routine or emergency")
	}

	wo := &WorkOrder{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		PropertyID:           propertyID,
		Issue:                issue,
		Description:          strings.TrimSpace(description),
		Priority:             priority,
		Status:               StatusOpen,
		PayoutAmount:         decimal.Zero,
	}
	wo.AddDomainEvent(NewWorkOrderCreatedEvent(wo.ID, companyID, propertyID, string(priority)))
	return wo, nil
}

// SetUnit attaches the work order to a unit within its property and
// snapshots the unit's label.
func (w *WorkOrder) SetUnit(unitID uuid.UUID, label string) {
	w.UnitID = &unitID
	w.UnitLabel = strings.TrimSpace(label)
	w.Touch()
	w.IncrementVersion()
}

// SetIntakeDetails records permission-to-enter, the tenant's preferred
// visit window and the tenant's contact details as captured at intake.
func (w *WorkOrder) SetIntakeDetails(pte bool, preferredWindow, tenantName, tenantPhone string) {
	w.PTE = pte
	w.PreferredWindow = strings.TrimSpace(preferredWindow)
	w.TenantName = strings.TrimSpace(tenantName)
	w.TenantPhone = strings.TrimSpace(tenantPhone)
	w.Touch()
	w.IncrementVersion()
}

// SetServiceType records what kind of work is being done
func (w *WorkOrder) SetServiceType(serviceTypeID uuid.UUID) {
	w.ServiceTypeID = &serviceTypeID
	w.Touch()
	w.IncrementVersion()
}

// SetPayoutAmount records the amount to credit the technician on completion
func (w *WorkOrder) SetPayoutAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payout amount cannot be negative")
	}
	w.PayoutAmount = amount
	w.Touch()
	w.IncrementVersion()
	return nil
}

// UpdateDetails changes the issue, description and priority while the
// order is still editable.
func (w *WorkOrder) UpdateDetails(issue, description string, priority Priority) error {
	if w.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit a completed or cancelled work order")
	}
	issue, err := validateIssue(issue)
	if err != nil {
		return err
	}
	switch priority {
	case PriorityRoutine, PriorityEmergency:
	default:
		return shared.NewDomainError("INVALID_PRIORITY", "Priority must be routine or emergency")
	}
	w.Issue = issue
	w.Description = strings.TrimSpace(description)
	w.Priority = priority
	w.Touch()
	w.IncrementVersion()
	return nil
}

// Assign moves an open work order to assigned
func (w *WorkOrder) Assign(technicianID uuid.UUID) error {
	if w.Status != StatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Only open work orders can be assigned")
	}
	now := time.Now()
	w.TechnicianID = &technicianID
	w.Status = StatusAssigned
	w.AssignedAt = &now
	w.Touch()
	w.IncrementVersion()
	w.AddDomainEvent(NewWorkOrderAssignedEvent(w.ID, w.CompanyID, technicianID))
	return nil
}

// Reassign replaces the technician on an assigned work order
func (w *WorkOrder) Reassign(technicianID uuid.UUID) error {
	if w.Status != StatusAssigned {
		return shared.NewDomainError("INVALID_STATE", "Only assigned work orders can be reassigned")
	}
	now := time.Now()
	w.TechnicianID = &technicianID
	w.AssignedAt = &now
	w.Touch()
	w.IncrementVersion()
	w.AddDomainEvent(NewWorkOrderAssignedEvent(w.ID, w.CompanyID, technicianID))
	return nil
}

// Start moves an assigned work order to in_progress
func (w *WorkOrder) Start() error {
	if w.Status != StatusAssigned {
		return shared.NewDomainError("INVALID_STATE", "Only assigned work orders can be started")
	}
	now := time.Now()
	w.Status = StatusInProgress
	w.StartedAt = &now
	w.Touch()
	w.IncrementVersion()
	return nil
}

// Complete finishes an in_progress work order. Completion requires an
// assigned technician and publishes a completion event that downstream
// handlers use to credit the technician's wallet.
func (w *WorkOrder) Complete() error {
	if w.Status != StatusInProgress {
		return shared.NewDomainError("INVALID_STATE", "Only in_progress work orders can be completed")
	}
	if w.TechnicianID == nil {
		return shared.NewDomainError("INVALID_STATE", "Cannot complete a work order with no assigned technician")
	}
	now := time.Now()
	w.Status = StatusCompleted
	w.CompletedAt = &now
	w.Touch()
	w.IncrementVersion()
	w.AddDomainEvent(NewWorkOrderCompletedEvent(w.ID, w.CompanyID, *w.TechnicianID, w.PayoutAmount))
	return nil
}

// Cancel aborts a work order from any non-terminal state
func (w *WorkOrder) Cancel(reason string) error {
	if w.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Work order is already completed or cancelled")
	}
	now := time.Now()
	w.Status = StatusCancelled
	w.CancelledAt = &now
	w.CancelReason = strings.TrimSpace(reason)
	w.Touch()
	w.IncrementVersion()
	w.AddDomainEvent(NewWorkOrderCancelledEvent(w.ID, w.CompanyID, w.CancelReason))
	return nil
}
