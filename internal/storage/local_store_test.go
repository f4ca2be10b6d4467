package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalImageStore_WriteAndExists(t *testing.T) {
	store := NewLocalImageStore(t.TempDir())
	ctx := context.Background()

	exists, err := store.Exists(ctx, "listing-1")
	require.NoError(t, err)
	assert.False(t, exists)

	rel, err := store.Write(ctx, "listing-1", "photo.jpg", strings.NewReader("jpegdata"))
	require.NoError(t, err)
	assert.Equal(t, "uploads/listing-1/photo.jpg", rel)

	exists, err = store.Exists(ctx, "listing-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalImageStore_RelativePathUsesForwardSlashes(t *testing.T) {
	store := NewLocalImageStore(t.TempDir())

	rel, err := store.Write(context.Background(), "listing-2", "car.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.NotContains(t, rel, "\\")
	assert.True(t, strings.HasPrefix(rel, "uploads/"))
}

func TestLocalImageStore_WriteStripsDirectoryComponents(t *testing.T) {
	root := t.TempDir()
	store := NewLocalImageStore(root)

	rel, err := store.Write(context.Background(), "listing-3", "../../escape.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "uploads/listing-3/escape.jpg", rel)

	_, err = os.Stat(filepath.Join(root, "uploads", "listing-3", "escape.jpg"))
	assert.NoError(t, err)
}

func TestLocalImageStore_ClearThenWriteLeavesSingleFile(t *testing.T) {
	root := t.TempDir()
	store := NewLocalImageStore(root)
	ctx := context.Background()

	_, err := store.Write(ctx, "listing-4", "old.jpg", strings.NewReader("old"))
	require.NoError(t, err)

	require.NoError(t, store.ClearDirectory(ctx, "listing-4"))
	_, err = store.Write(ctx, "listing-4", "new.jpg", strings.NewReader("new"))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "uploads", "listing-4"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new.jpg", entries[0].Name())
}

func TestLocalImageStore_MissingDirectoryIsNotAnError(t *testing.T) {
	store := NewLocalImageStore(t.TempDir())
	ctx := context.Background()

	assert.NoError(t, store.ClearDirectory(ctx, "never-created"))
	assert.NoError(t, store.DeleteDirectory(ctx, "never-created"))
}

func TestLocalImageStore_DeleteDirectory(t *testing.T) {
	root := t.TempDir()
	store := NewLocalImageStore(root)
	ctx := context.Background()

	_, err := store.Write(ctx, "listing-5", "photo.jpg", strings.NewReader("data"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteDirectory(ctx, "listing-5"))

	exists, err := store.Exists(ctx, "listing-5")
	require.NoError(t, err)
	assert.False(t, exists)
}
