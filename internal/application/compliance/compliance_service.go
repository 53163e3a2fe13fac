package compliance

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dispatchiq/backend/internal/domain/compliance"
	"github.com/dispatchiq/backend/internal/domain/shared"
	"github.com/dispatchiq/backend/internal/domain/workforce"
	"github.com/dispatchiq/backend/internal/infrastructure/storage"
)

const (
	documentURLExpiry = 15 * time.Minute

	// DefaultExpiryWindow is how far ahead the expiring-soon query looks
	// when the caller does not say.
	DefaultExpiryWindow = 30 * 24 * time.Hour
)

// Service manages technician compliance documents: upload, review and
// expiry tracking.
type Service struct {
	documentRepo   compliance.DocumentRepository
	technicianRepo workforce.TechnicianRepository
	objectStorage  storage.ObjectStorage
	logger         *zap.Logger
}

// NewService creates a new compliance service
func NewService(
	documentRepo compliance.DocumentRepository,
	technicianRepo workforce.TechnicianRepository,
	objectStorage storage.ObjectStorage,
	logger *zap.Logger,
) *Service {
	return &Service{
		documentRepo:   documentRepo,
		technicianRepo: technicianRepo,
		objectStorage:  objectStorage,
		logger:         logger,
	}
}

// Upload stores a compliance file and creates a pending document record
func (s *Service) Upload(ctx context.Context, input UploadInput) (*DocumentInfo, error) {
	if _, err := s.technicianRepo.FindByID(ctx, input.CompanyID, input.TechnicianID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TECHNICIAN_NOT_FOUND", "Technician not found")
		}
		return nil, err
	}

	docType, err := compliance.ParseDocumentType(input.Type)
	if err != nil {
		return nil, err
	}

	storageKey := fmt.Sprintf("compliance/%s/%s/%s%s",
		input.CompanyID, input.TechnicianID, uuid.New(), path.Ext(input.FileName))

	document, err := compliance.NewDocument(input.CompanyID, input.TechnicianID, docType,
		storageKey, input.FileName, input.ContentType, int64(len(input.Data)))
	if err != nil {
		return nil, err
	}
	if input.ExpiresAt != nil {
		if err := document.SetExpiry(*input.ExpiresAt); err != nil {
			return nil, err
		}
	}

	if err := s.objectStorage.Upload(ctx, storageKey, input.Data, input.ContentType); err != nil {
		s.logger.Error("Failed to upload compliance document", zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to store document")
	}
	if err := s.documentRepo.Save(ctx, document); err != nil {
		s.logger.Error("Failed to save compliance document", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record document")
	}

	s.logger.Info("Compliance document uploaded",
		zap.String("document_id", document.ID.String()),
		zap.String("technician_id", input.TechnicianID.String()),
		zap.String("type", string(docType)))

	info := toDocumentInfo(document)
	return &info, nil
}

// Get returns a single document by ID
func (s *Service) Get(ctx context.Context, companyID, documentID uuid.UUID) (*DocumentInfo, error) {
	document, err := s.findDocument(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	info := toDocumentInfo(document)
	return &info, nil
}

// List returns a paginated list of documents
func (s *Service) List(ctx context.Context, input ListInput) (shared.Paginated[DocumentInfo], error) {
	filter := compliance.NewDocumentFilter(input.CompanyID)
	filter.Filter = input.Filter
	filter.TechnicianID = input.TechnicianID
	if input.Type != "" {
		docType, err := compliance.ParseDocumentType(input.Type)
		if err != nil {
			return shared.Paginated[DocumentInfo]{}, err
		}
		filter.Type = &docType
	}
	if input.Status != "" {
		status := compliance.ReviewStatus(input.Status)
		switch status {
		case compliance.ReviewPending, compliance.ReviewApproved, compliance.ReviewRejected:
		default:
			return shared.Paginated[DocumentInfo]{}, shared.NewDomainError("INVALID_STATUS",
				"Status must be pending, approved or rejected")
		}
		filter.Status = &status
	}

	return s.list(ctx, filter)
}

// ExpiringSoon returns approved documents whose expiry falls within the
// given window.
func (s *Service) ExpiringSoon(ctx context.Context, input ExpiringSoonInput) (shared.Paginated[DocumentInfo], error) {
	window := input.Within
	if window <= 0 {
		window = DefaultExpiryWindow
	}
	deadline := time.Now().Add(window)

	status := compliance.ReviewApproved
	filter := compliance.NewDocumentFilter(input.CompanyID)
	filter.Filter = input.Filter
	filter.Status = &status
	filter.ExpiresBefore = &deadline

	return s.list(ctx, filter)
}

// Approve marks a pending document as approved
func (s *Service) Approve(ctx context.Context, input ReviewInput) (*DocumentInfo, error) {
	return s.review(ctx, input, (*compliance.Document).Approve)
}

// Reject marks a pending document as rejected
func (s *Service) Reject(ctx context.Context, input ReviewInput) (*DocumentInfo, error) {
	return s.review(ctx, input, (*compliance.Document).Reject)
}

// DownloadURL returns a presigned download URL for a document
func (s *Service) DownloadURL(ctx context.Context, companyID, documentID uuid.UUID) (*DocumentURLResult, error) {
	document, err := s.findDocument(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}

	url, expiresAt, err := s.objectStorage.GenerateDownloadURL(ctx, document.StorageKey, documentURLExpiry)
	if err != nil {
		s.logger.Error("Failed to generate document download URL", zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to generate download URL")
	}
	return &DocumentURLResult{URL: url, ExpiresAt: expiresAt}, nil
}

// Delete removes a document record and its stored file
func (s *Service) Delete(ctx context.Context, companyID, documentID uuid.UUID) error {
	document, err := s.findDocument(ctx, companyID, documentID)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, companyID, documentID); err != nil {
		return err
	}
	if err := s.objectStorage.DeleteObject(ctx, document.StorageKey); err != nil {
		// The record is gone; losing the orphan object is tolerable
		s.logger.Warn("Failed to delete stored document object",
			zap.String("storage_key", document.StorageKey), zap.Error(err))
	}
	return nil
}

func (s *Service) review(ctx context.Context, input ReviewInput, op func(*compliance.Document, uuid.UUID, string) error) (*DocumentInfo, error) {
	document, err := s.findDocument(ctx, input.CompanyID, input.DocumentID)
	if err != nil {
		return nil, err
	}
	if err := op(document, input.ReviewerID, input.Note); err != nil {
		return nil, err
	}
	if err := s.documentRepo.Save(ctx, document); err != nil {
		s.logger.Error("Failed to save document review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save review")
	}

	s.logger.Info("Compliance document reviewed",
		zap.String("document_id", document.ID.String()),
		zap.String("status", string(document.Status)))

	info := toDocumentInfo(document)
	return &info, nil
}

func (s *Service) list(ctx context.Context, filter compliance.DocumentFilter) (shared.Paginated[DocumentInfo], error) {
	page, err := s.documentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list compliance documents", zap.Error(err))
		return shared.Paginated[DocumentInfo]{}, shared.NewDomainError("INTERNAL_ERROR", "Failed to list documents")
	}

	items := make([]DocumentInfo, 0, len(page.Items))
	for _, document := range page.Items {
		items = append(items, toDocumentInfo(document))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

func (s *Service) findDocument(ctx context.Context, companyID, documentID uuid.UUID) (*compliance.Document, error) {
	document, err := s.documentRepo.FindByID(ctx, companyID, documentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("DOCUMENT_NOT_FOUND", "Document not found")
		}
		return nil, err
	}
	return document, nil
}

func toDocumentInfo(document *compliance.Document) DocumentInfo {
	return DocumentInfo{
		ID:           document.ID,
		TechnicianID: document.TechnicianID,
		Type:         string(document.Type),
		FileName:     document.FileName,
		ContentType:  document.ContentType,
		SizeBytes:    document.SizeBytes,
		Status:       string(document.Status),
		ExpiresAt:    document.ExpiresAt,
		ReviewedBy:   document.ReviewedBy,
		ReviewedAt:   document.ReviewedAt,
		ReviewNote:   document.ReviewNote,
		Expired:      document.IsExpired(),
		CreatedAt:    document.CreatedAt,
	}
}
