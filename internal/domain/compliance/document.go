package compliance

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// DocumentType classifies a compliance document
type DocumentType string

const (
	DocLicense       DocumentType = "license"
	DocInsurance     DocumentType = "insurance"
	DocCertification DocumentType = "certification"
	DocW9            DocumentType = "w9"
)

// ReviewStatus is the review state of a compliance document
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// ParseDocumentType normalizes and validates a document type value
func ParseDocumentType(value string) (DocumentType, error) {
	switch DocumentType(strings.ToLower(strings.TrimSpace(value))) {
	case DocLicense:
		return DocLicense, nil
	case DocInsurance:
		return DocInsurance, nil
	case DocCertification:
		return DocCertification, nil
	case DocW9:
		return DocW9, nil
	default:
		return "", shared.NewDomainError("INVALID_DOCUMENT_TYPE",
			"Document type must be license, insurance, certification or w9")
	}
}

// Document is a compliance file a technician uploads for review, stored
// in object storage and referenced by key. Documents start pending and
// are approved or rejected by a reviewer.
type Document struct {
	shared.CompanyAggregateRoot
	TechnicianID uuid.UUID
	Type         DocumentType
	StorageKey   string
	FileName     string
	ContentType  string
	SizeBytes    int64
	Status       ReviewStatus
	ExpiresAt    *time.Time
	ReviewedBy   *uuid.UUID
	ReviewedAt   *time.Time
	ReviewNote   string
}

// NewDocument records an uploaded compliance document pending review
func NewDocument(companyID, technicianID uuid.UUID, docType DocumentType, storageKey, fileName, contentType string, sizeBytes int64) (*Document, error) {
	switch docType {
	case DocLicense, DocInsurance, DocCertification, DocW9:
	default:
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Unknown document type")
	}
	if storageKey = strings.TrimSpace(storageKey); storageKey == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Storage key is required")
	}
	if sizeBytes <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "File size must be positive")
	}
	return &Document{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		TechnicianID:         technicianID,
		Type:                 docType,
		StorageKey:           storageKey,
		FileName:             strings.TrimSpace(fileName),
		ContentType:          contentType,
		SizeBytes:            sizeBytes,
		Status:               ReviewPending,
	}, nil
}

// SetExpiry records when the document expires
func (d *Document) SetExpiry(expiresAt time.Time) error {
	if expiresAt.Before(time.Now()) {
		return shared.NewDomainError("INVALID_EXPIRY", "Expiry date must be in the future")
	}
	d.ExpiresAt = &expiresAt
	d.Touch()
	d.IncrementVersion()
	return nil
}

// Approve marks a pending document as approved
func (d *Document) Approve(reviewerID uuid.UUID, note string) error {
	if d.Status != ReviewPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending documents can be reviewed")
	}
	now := time.Now()
	d.Status = ReviewApproved
	d.ReviewedBy = &reviewerID
	d.ReviewedAt = &now
	d.ReviewNote = strings.TrimSpace(note)
	d.Touch()
	d.IncrementVersion()
	return nil
}

// Reject marks a pending document as rejected. A rejection note is required.
func (d *Document) Reject(reviewerID uuid.UUID, note string) error {
	if d.Status != ReviewPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending documents can be reviewed")
	}
	if note = strings.TrimSpace(note); note == "" {
		return shared.NewDomainError("INVALID_INPUT", "A rejection note is required")
	}
	now := time.Now()
	d.Status = ReviewRejected
	d.ReviewedBy = &reviewerID
	d.ReviewedAt = &now
	d.ReviewNote = note
	d.Touch()
	d.IncrementVersion()
	return nil
}

// IsExpired reports whether the document has passed its expiry date
func (d *Document) IsExpired() bool {
	return d.ExpiresAt != nil && time.Now().After(*d.ExpiresAt)
}
