package workorder

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// Event types for the workorder context
const (
	EventWorkOrderCreated   = "workorder.created"
	EventWorkOrderAssigned  = "workorder.assigned"
	EventWorkOrderCompleted = "workorder.completed"
	EventWorkOrderCancelled = "workorder.cancelled"
)

// WorkOrderCreatedEvent is published when a work order is opened
type WorkOrderCreatedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"property_id"`
	Priority   string    `json:"priority"`
}

// NewWorkOrderCreatedEvent creates a work order created event
func NewWorkOrderCreatedEvent(workOrderID, companyID, propertyID uuid.UUID, priority string) *WorkOrderCreatedEvent {
	return &WorkOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventWorkOrderCreated, "WorkOrder", workOrderID, companyID),
		PropertyID:      propertyID,
		Priority:        priority,
	}
}

// WorkOrderAssignedEvent is published when a technician is assigned
type WorkOrderAssignedEvent struct {
	shared.BaseDomainEvent
	TechnicianID uuid.UUID `json:"technician_id"`
}

// NewWorkOrderAssignedEvent creates a work order assigned event
func NewWorkOrderAssignedEvent(workOrderID, companyID, technicianID uuid.UUID) *WorkOrderAssignedEvent {
	return &WorkOrderAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventWorkOrderAssigned, "WorkOrder", workOrderID, companyID),
		TechnicianID:    technicianID,
	}
}

// WorkOrderCompletedEvent is published when a work order completes.
// The wallet context consumes it to credit the technician.
type WorkOrderCompletedEvent struct {
	shared.BaseDomainEvent
	TechnicianID uuid.UUID       `json:"technician_id"`
	PayoutAmount decimal.Decimal `json:"payout_amount"`
}

// NewWorkOrderCompletedEvent creates a work order completed event
func NewWorkOrderCompletedEvent(workOrderID, companyID, technicianID uuid.UUID, payout decimal.Decimal) *WorkOrderCompletedEvent {
	return &WorkOrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventWorkOrderCompleted, "WorkOrder", workOrderID, companyID),
		TechnicianID:    technicianID,
		PayoutAmount:    payout,
	}
}

// WorkOrderCancelledEvent is published when a work order is cancelled
type WorkOrderCancelledEvent struct {
	shared.BaseDomainEvent
	Reason string `json:"reason"`
}

// NewWorkOrderCancelledEvent creates a work order cancelled event
func NewWorkOrderCancelledEvent(workOrderID, companyID uuid.UUID, reason string) *WorkOrderCancelledEvent {
	return &WorkOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventWorkOrderCancelled, "WorkOrder", workOrderID, companyID),
		Reason:          reason,
	}
}
