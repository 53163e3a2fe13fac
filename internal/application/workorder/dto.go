package workorder

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// CreateInput contains the input for creating a work order. The unit
// may be referenced by ID or upserted by label; at most one of the two
// should be set.
type CreateInput struct {
	CompanyID       uuid.UUID
	PropertyID      uuid.UUID
	UnitID          *uuid.UUID
	UnitLabel       string
	ServiceTypeID   *uuid.UUID
	Issue           string
	Description     string
	Priority        string
	PTE             bool
	PreferredWindow string
	TenantName      string
	TenantPhone     string
	TechnicianID    *uuid.UUID
	PayoutAmount    *decimal.Decimal
	ReportedBy      string
}

// UpdateInput contains the input for updating a work order. The intake
// detail pointers leave the stored values untouched when nil.
type UpdateInput struct {
	CompanyID       uuid.UUID
	WorkOrderID     uuid.UUID
	Issue           string
	Description     string
	Priority        string
	PTE             *bool
	PreferredWindow *string
	TenantName      *string
	TenantPhone     *string
	TechnicianID    *uuid.UUID
	PayoutAmount    *decimal.Decimal
}

// ListInput contains filters for listing work orders
type ListInput struct {
	CompanyID    uuid.UUID
	Status       string
	Priority     string
	PropertyID   *uuid.UUID
	TechnicianID *uuid.UUID
	Keyword      string
	Filter       shared.Filter
}

// AssignInput contains the input for assigning a technician
type AssignInput struct {
	CompanyID    uuid.UUID
	WorkOrderID  uuid.UUID
	TechnicianID uuid.UUID
}

// CancelInput contains the input for cancelling a work order
type CancelInput struct {
	CompanyID   uuid.UUID
	WorkOrderID uuid.UUID
	Reason      string
}

// Info is the work order view returned by work order operations.
// PropertyName is joined from the property so lists render without an
// extra lookup.
type Info struct {
	ID              uuid.UUID
	PropertyID      uuid.UUID
	PropertyName    string
	UnitID          *uuid.UUID
	UnitLabel       string
	ServiceType     *uuid.UUID
	Issue           string
	Description     string
	Priority        string
	Status          string
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
	CreatedAt       time.Time
}

// PropertyOption is a property with its units, used by intake forms
type PropertyOption struct {
	ID    uuid.UUID
	Name  string
	Units []UnitOption
}

// UnitOption is a selectable unit within a property option
type UnitOption struct {
	ID    uuid.UUID
	Label string
}

// AttachEvidenceInput contains the input for uploading job evidence
type AttachEvidenceInput struct {
	CompanyID   uuid.UUID
	WorkOrderID uuid.UUID
	UploadedBy  uuid.UUID
	Kind        string
	FileName    string
	ContentType string
	Data        []byte
	Caption     string
}

// EvidenceInfo is the evidence view returned by evidence operations
type EvidenceInfo struct {
	ID          uuid.UUID
	WorkOrderID uuid.UUID
	Kind        string
	FileName    string
	ContentType string
	SizeBytes   int64
	Caption     string
	UploadedBy  uuid.UUID
	CreatedAt   time.Time
}

// EvidenceURLResult carries a presigned download URL for an evidence file
type EvidenceURLResult struct {
	URL       string
	ExpiresAt time.Time
}
