package compliance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocument(t *testing.T) *Document {
	t.Helper()
	doc, err := NewDocument(uuid.New(), uuid.New(), DocLicense,
		"compliance/2026/08/lic.pdf", "license.pdf", "application/pdf", 4096)
	require.NoError(t, err)
	return doc
}

func TestNewDocument(t *testing.T) {
	t.Run("creates pending document", func(t *testing.T) {
		doc := newTestDocument(t)
		assert.Equal(t, ReviewPending, doc.Status)
		assert.Nil(t, doc.ReviewedBy)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewDocument(uuid.New(), uuid.New(), "passport", "k", "f", "", 1)
		assert.Error(t, err)
	})

	t.Run("rejects empty storage key", func(t *testing.T) {
		_, err := NewDocument(uuid.New(), uuid.New(), DocW9, " ", "f", "", 1)
		assert.Error(t, err)
	})
}

func TestParseDocumentType(t *testing.T) {
	got, err := ParseDocumentType(" Insurance ")
	require.NoError(t, err)
	assert.Equal(t, DocInsurance, got)

	_, err = ParseDocumentType("id_card")
	assert.Error(t, err)
}

func TestDocument_Review(t *testing.T) {
	t.Run("approve pending", func(t *testing.T) {
		doc := newTestDocument(t)
		reviewer := uuid.New()

		require.NoError(t, doc.Approve(reviewer, "looks good"))
		assert.Equal(t, ReviewApproved, doc.Status)
		assert.Equal(t, reviewer, *doc.ReviewedBy)
		assert.NotNil(t, doc.ReviewedAt)

		assert.Error(t, doc.Approve(reviewer, "again"))
		assert.Error(t, doc.Reject(reviewer, "nope"))
	})

	t.Run("reject requires note", func(t *testing.T) {
		doc := newTestDocument(t)
		reviewer := uuid.New()

		assert.Error(t, doc.Reject(reviewer, "  "))
		require.NoError(t, doc.Reject(reviewer, "document is expired"))
		assert.Equal(t, ReviewRejected, doc.Status)
		assert.Equal(t, "document is expired", doc.ReviewNote)
	})
}

func TestDocument_Expiry(t *testing.T) {
	doc := newTestDocument(t)

	assert.Error(t, doc.SetExpiry(time.Now().Add(-time.Hour)))
	assert.False(t, doc.IsExpired())

	require.NoError(t, doc.SetExpiry(time.Now().Add(24*time.Hour)))
	assert.False(t, doc.IsExpired())

	past := time.Now().Add(-time.Minute)
	doc.ExpiresAt = &past
	assert.True(t, doc.IsExpired())
}
