package compliance

import (
	"time"

	"github.com/google/uuid"

	"github.com/dispatchiq/backend/internal/domain/shared"
)

// UploadInput contains the input for uploading a compliance document
type UploadInput struct {
	CompanyID    uuid.UUID
	TechnicianID uuid.UUID
	Type         string
	FileName     string
	ContentType  string
	Data         []byte
	ExpiresAt    *time.Time
}

// ReviewInput contains the input for approving or rejecting a document
type ReviewInput struct {
	CompanyID  uuid.UUID
	DocumentID uuid.UUID
	ReviewerID uuid.UUID
	Note       string
}

// ListInput contains filters for listing compliance documents
type ListInput struct {
	CompanyID    uuid.UUID
	TechnicianID *uuid.UUID
	Type         string
	Status       string
	Filter       shared.Filter
}

// ExpiringSoonInput contains the input for the expiring-soon query
type ExpiringSoonInput struct {
	CompanyID uuid.UUID
	Within    time.Duration
	Filter    shared.Filter
}

// DocumentInfo is the document view returned by compliance operations
type DocumentInfo struct {
	ID           uuid.UUID
	TechnicianID uuid.UUID
	Type         string
	FileName     string
	ContentType  string
	SizeBytes    int64
	Status       string
	ExpiresAt    *time.Time
	ReviewedBy   *uuid.UUID
	ReviewedAt   *time.Time
	ReviewNote   string
	Expired      bool
	CreatedAt    time.Time
}

// DocumentURLResult carries a presigned download URL for a document
type DocumentURLResult struct {
	URL       string
	ExpiresAt time.Time
}
