package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage(t *testing.T) {
	stub := NewStubObjectStorage()
	ctx := context.Background()

	t.Run("upload and existence", func(t *testing.T) {
		exists, err := stub.ObjectExists(ctx, "evidence/a.jpg")
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, stub.Upload(ctx, "evidence/a.jpg", []byte("data"), "image/jpeg"))

		exists, err = stub.ObjectExists(ctx, "evidence/a.jpg")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, stub.Upload(ctx, "evidence/b.jpg", []byte("data"), "image/jpeg"))
		require.NoError(t, stub.DeleteObject(ctx, "evidence/b.jpg"))

		exists, err := stub.ObjectExists(ctx, "evidence/b.jpg")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("presigned URLs", func(t *testing.T) {
		url, expiresAt, err := stub.GenerateUploadURL(ctx, "evidence/c.jpg", "image/jpeg", time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "evidence/c.jpg")
		assert.True(t, expiresAt.After(time.Now()))

		url, _, err = stub.GenerateDownloadURL(ctx, "evidence/c.jpg", 0)
		require.NoError(t, err)
		assert.Contains(t, url, "download")

		_, _, err = stub.GenerateUploadURL(ctx, "", "", 0)
		assert.Error(t, err)
	})
}
