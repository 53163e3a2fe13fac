package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/compliance"
)

// ComplianceDocumentModel is the persistence model for compliance documents
type ComplianceDocumentModel struct {
	CompanyAggregateModel
	TechnicianID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type         string    `gorm:"type:varchar(32);not null"`
	StorageKey   string    `gorm:"type:varchar(512);not null"`
	FileName     string    `gorm:"type:varchar(255)"`
	ContentType  string    `gorm:"type:varchar(128)"`
	SizeBytes    int64     `gorm:"not null"`
	Status       string    `gorm:"type:varchar(16);not null;index"`
	ExpiresAt    *time.Time
	ReviewedBy   *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt   *time.Time
	ReviewNote   string `gorm:"type:text"`
}

// TableName returns the table name for ComplianceDocumentModel
func (ComplianceDocumentModel) TableName() string {
	return "compliance_documents"
}

// ToDomain converts the model to a domain Document
func (m *ComplianceDocumentModel) ToDomain() *compliance.Document {
	doc := &compliance.Document{
		TechnicianID: m.TechnicianID,
		Type:         compliance.DocumentType(m.Type),
		StorageKey:   m.StorageKey,
		FileName:     m.FileName,
		ContentType:  m.ContentType,
		SizeBytes:    m.SizeBytes,
		Status:       compliance.ReviewStatus(m.Status),
		ExpiresAt:    m.ExpiresAt,
		ReviewedBy:   m.ReviewedBy,
		ReviewedAt:   m.ReviewedAt,
		ReviewNote:   m.ReviewNote,
	}
	m.PopulateCompanyAggregateRoot(&doc.CompanyAggregateRoot)
	return doc
}

// FromDomain populates the model from a domain Document
func (m *ComplianceDocumentModel) FromDomain(doc *compliance.Document) {
	m.FromDomainCompanyAggregateRoot(doc.CompanyAggregateRoot)
	m.TechnicianID = doc.TechnicianID
	m.Type = string(doc.Type)
	m.StorageKey = doc.StorageKey
	m.FileName = doc.FileName
	m.ContentType = doc.ContentType
	m.SizeBytes = doc.SizeBytes
	m.Status = string(doc.Status)
	m.ExpiresAt = doc.ExpiresAt
	m.ReviewedBy = doc.ReviewedBy
	m.ReviewedAt = doc.ReviewedAt
	m.ReviewNote = doc.ReviewNote
}
