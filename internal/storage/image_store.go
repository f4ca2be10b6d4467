package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// uploadsPrefix is the canonical first segment of every stored relative path.
const uploadsPrefix = "uploads"

// IImageStore manages the per-listing upload directory. The directory key is
// the listing id; after any successful Update cycle the directory holds at
// most one file. Stored relative paths always use forward slashes.
type IImageStore interface {
	// Write streams the payload to <uploads>/<listingID>/<filename>, creating
	// the directory if absent, and returns the stored relative path.
	Write(ctx context.Context, listingID, filename string, r io.Reader) (string, error)
	// ClearDirectory removes every file in the listing's directory. Missing
	// directories are not an error.
	ClearDirectory(ctx context.Context, listingID string) error
	// DeleteDirectory recursively removes the listing's directory. Missing
	// directories are not an error.
	DeleteDirectory(ctx context.Context, listingID string) error
	// Exists reports whether the listing's directory exists.
	Exists(ctx context.Context, listingID string) (bool, error)
}

// localImageStore keeps upload directories under root on the local disk,
// mirroring the layout the router serves statically at /uploads.
type localImageStore struct {
	root string
}

// NewLocalImageStore creates a disk-backed image store rooted at root.
func NewLocalImageStore(root string) IImageStore {
	return &localImageStore{root: root}
}

func (s *localImageStore) dir(listingID string) string {
	return filepath.Join(s.root, uploadsPrefix, listingID)
}

func (s *localImageStore) Write(_ context.Context, listingID, filename string, r io.Reader) (string, error) {
	// Strip any client-supplied directory components before touching disk.
	filename = filepath.Base(filename)

	dir := s.dir(listingID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory for listing %s: %w", listingID, err)
	}

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create image file %s for listing %s: %w", filename, listingID, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("failed to write image file %s for listing %s: %w", filename, listingID, err)
	}

	return path.Join(uploadsPrefix, listingID, filename), nil
}

func (s *localImageStore) ClearDirectory(_ context.Context, listingID string) error {
	dir := s.dir(listingID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read upload directory for listing %s: %w", listingID, err)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove stale file %s for listing %s: %w", entry.Name(), listingID, err)
		}
	}
	return nil
}

func (s *localImageStore) DeleteDirectory(_ context.Context, listingID string) error {
	if err := os.RemoveAll(s.dir(listingID)); err != nil {
		return fmt.Errorf("failed to delete upload directory for listing %s: %w", listingID, err)
	}
	return nil
}

func (s *localImageStore) Exists(_ context.Context, listingID string) (bool, error) {
	info, err := os.Stat(s.dir(listingID))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat upload directory for listing %s: %w", listingID, err)
	}
	return info.IsDir(), nil
}
