package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchiq/backend/internal/domain/workorder"
)

// WorkOrderModel is the persistence model for work orders
type WorkOrderModel struct {
	CompanyAggregateModel
	PropertyID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitID          *uuid.UUID      `gorm:"type:uuid;index"`
	UnitLabel       string          `gorm:"type:varchar(50)"`
	ServiceTypeID   *uuid.UUID      `gorm:"type:uuid;index"`
	Issue           string          `gorm:"type:varchar(255);not null"`
	Description     string          `gorm:"type:text"`
	Priority        string          `gorm:"type:varchar(16);not null;index"`
	Status          string          `gorm:"type:varchar(16);not null;index"`
	PTE             bool            `gorm:"column:pte;not null;default:false"`
	PreferredWindow string          `gorm:"type:varchar(100)"`
	TenantName      string          `gorm:"type:varchar(200)"`
	TenantPhone     string          `gorm:"type:varchar(32)"`
	TechnicianID    *uuid.UUID      `gorm:"type:uuid;index"`
	PayoutAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ReportedBy      string          `gorm:"type:varchar(255)"`
	AssignedAt      *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:text"`
}

// TableName returns the table name for WorkOrderModel
func (WorkOrderModel) TableName() string {
	return "work_orders"
}

// ToDomain converts the model to a domain WorkOrder
func (m *WorkOrderModel) ToDomain() *workorder.WorkOrder {
	wo := &workorder.WorkOrder{
		PropertyID:      m.PropertyID,
		UnitID:          m.UnitID,
		UnitLabel:       m.UnitLabel,
		ServiceTypeID:   m.ServiceTypeID,
		Issue:           m.Issue,
		Description:     m.Description,
		Priority:        workorder.Priority(m.Priority),
		Status:          workorder.Status(m.Status),
		PTE:             m.PTE,
		PreferredWindow: m.PreferredWindow,
		TenantName:      m.TenantName,
		TenantPhone:     m.TenantPhone,
		TechnicianID:    m.TechnicianID,
		PayoutAmount:    m.PayoutAmount,
		ReportedBy:      m.ReportedBy,
		AssignedAt:      m.AssignedAt,
		StartedAt:       m.StartedAt,
		CompletedAt:     m.CompletedAt,
		CancelledAt:     m.CancelledAt,
		CancelReason:    m.CancelReason,
	}
	m.PopulateCompanyAggregateRoot(&wo.CompanyAggregateRoot)
	return wo
}

// FromDomain populates the model from a domain WorkOrder
func (m *WorkOrderModel) FromDomain(wo *workorder.WorkOrder) {
	m.FromDomainCompanyAggregateRoot(wo.CompanyAggregateRoot)
	m.PropertyID = wo.PropertyID
	m.UnitID = wo.UnitID
	m.UnitLabel = wo.UnitLabel
	m.ServiceTypeID = wo.ServiceTypeID
	m.Issue = wo.Issue
	m.Description = wo.Description
	m.Priority = string(wo.Priority)
	m.Status = string(wo.Status)
	m.PTE = wo.PTE
	m.PreferredWindow = wo.PreferredWindow
	m.TenantName = wo.TenantName
	m.TenantPhone = wo.TenantPhone
	m.TechnicianID = wo.TechnicianID
	m.PayoutAmount = wo.PayoutAmount
	m.ReportedBy = wo.ReportedBy
	m.AssignedAt = wo.AssignedAt
	m.StartedAt = wo.StartedAt
	m.CompletedAt = wo.CompletedAt
	m.CancelledAt = wo.CancelledAt
	m.CancelReason = wo.CancelReason
}

// JobEvidenceModel is the persistence model for job evidence files
type JobEvidenceModel struct {
	BaseModel
	WorkOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind        string    `gorm:"type:varchar(16);not null"`
	StorageKey  string    `gorm:"type:varchar(512);not null"`
	FileName    string    `gorm:"type:varchar(255)"`
	ContentType string    `gorm:"type:varchar(128)"`
	SizeBytes   int64     `gorm:"not null"`
	UploadedBy  uuid.UUID `gorm:"type:uuid;not null"`
	Caption     string    `gorm:"type:text"`
}

// TableName returns the table name for JobEvidenceModel
func (JobEvidenceModel) TableName() string {
	return "job_evidence"
}

// ToDomain converts the model to a domain JobEvidence
func (m *JobEvidenceModel) ToDomain() *workorder.JobEvidence {
	return &workorder.JobEvidence{
		BaseEntity:  m.BaseModel.ToDomain(),
		WorkOrderID: m.WorkOrderID,
		CompanyID:   m.CompanyID,
		Kind:        workorder.EvidenceKind(m.Kind),
		StorageKey:  m.StorageKey,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		UploadedBy:  m.UploadedBy,
		Caption:     m.Caption,
	}
}

// FromDomain populates the model from a domain JobEvidence
func (m *JobEvidenceModel) FromDomain(ev *workorder.JobEvidence) {
	m.FromDomainBaseEntity(ev.BaseEntity)
	m.WorkOrderID = ev.WorkOrderID
	m.CompanyID = ev.CompanyID
	m.Kind = string(ev.Kind)
	m.StorageKey = ev.StorageKey
	m.FileName = ev.FileName
	m.ContentType = ev.ContentType
	m.SizeBytes = ev.SizeBytes
	m.UploadedBy = ev.UploadedBy
	m.Caption = ev.Caption
}
