package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// StubObjectStorage is an in-memory ObjectStorage for tests and local
// development without an S3 backend.
type StubObjectStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

var _ ObjectStorage = (*StubObjectStorage)(nil)

// NewStubObjectStorage creates an in-memory object storage stub
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		objects: make(map[string][]byte),
		baseURL: "https://storage.stub.local",
	}
}

// GenerateUploadURL returns a fake presigned upload URL
func (s *StubObjectStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	return fmt.Sprintf("%s/upload/%s", s.baseURL, storageKey), time.Now().Add(expiresIn), nil
}

// GenerateDownloadURL returns a fake presigned download URL
func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	return fmt.Sprintf("%s/download/%s", s.baseURL, storageKey), time.Now().Add(expiresIn), nil
}

// Upload stores the data in memory
func (s *StubObjectStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = data
	return nil
}

// DeleteObject removes the object from memory
func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// ObjectExists reports whether the object is stored
func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}
