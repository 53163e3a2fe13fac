package workorder

import (
	"strings"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// EvidenceKind classifies a piece of job evidence
type EvidenceKind string

const (
	EvidencePhoto    EvidenceKind = "photo"
	EvidenceDocument EvidenceKind = "document"
	EvidenceNote     EvidenceKind = "note"
)

// JobEvidence is a file uploaded against a work order, stored in object
// storage and referenced here by key.
type JobEvidence struct {
	shared.BaseEntity
	WorkOrderID uuid.UUID
	CompanyID   uuid.UUID
	Kind        EvidenceKind
	StorageKey  string
	FileName    string
	ContentType string
	SizeBytes   int64
	UploadedBy  uuid.UUID
	Caption     string
}

// NewJobEvidence records an uploaded evidence file for a work order
func NewJobEvidence(workOrderID, companyID uuid.UUID, kind EvidenceKind, storageKey, fileName, contentType string, sizeBytes int64, uploadedBy uuid.UUID) (*JobEvidence, error) {
	switch kind {
	case EvidencePhoto, EvidenceDocument, EvidenceNote:
	default:
		return nil, shared.NewDomainError("INVALID_EVIDENCE_KIND", "Evidence kind must be photo, document or note")
	}
	if storageKey = strings.TrimSpace(storageKey); storageKey == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Storage key is required")
	}
	if sizeBytes <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "File size must be positive")
	}
	return &JobEvidence{
		BaseEntity:  shared.NewBaseEntity(),
		WorkOrderID: workOrderID,
		CompanyID:   companyID,
		Kind:        kind,
		StorageKey:  storageKey,
		FileName:    strings.TrimSpace(fileName),
		ContentType: contentType,
		SizeBytes:   sizeBytes,
		UploadedBy:  uploadedBy,
	}, nil
}

// SetCaption attaches a caption to the evidence
func (e *JobEvidence) SetCaption(caption string) {
	e.Caption = strings.TrimSpace(caption)
	e.Touch()
}
