// Package blob implements image storage on the local filesystem.
//
// Uploaded files land under a configured root directory and are served by
// the HTTP server under a configured base URL, so the stored path doubles
// as the public URL suffix.
package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sipalaciosv/dupe/internal/config"
)

// FSStore stores blobs as files under cfg.Dir and resolves their public
// URLs against cfg.BaseURL.
type FSStore struct {
	dir     string
	baseURL string
}

// NewFSStore creates a filesystem blob store, creating the root directory
// if needed.
func NewFSStore(cfg config.BlobConfig) (*FSStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &FSStore{
		dir:     cfg.Dir,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

// Upload writes content to the given slash-separated path (for example
// "groups/{gid}/dupes/{id}/main.jpg") and returns the public URL.
// Path traversal segments are rejected.
func (s *FSStore) Upload(ctx context.Context, blobPath string, content io.Reader) (string, error) {
	clean, err := s.resolve(blobPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return "", fmt.Errorf("create blob subdir: %w", err)
	}

	f, err := os.Create(clean)
	if err != nil {
		return "", fmt.Errorf("create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		_ = os.Remove(clean)
		return "", fmt.Errorf("write blob: %w", err)
	}

	return s.baseURL + "/" + path.Clean(blobPath), nil
}

// Delete removes a stored blob. Deleting a missing blob is not an error.
func (s *FSStore) Delete(ctx context.Context, blobPath string) error {
	clean, err := s.resolve(blobPath)
	if err != nil {
		return err
	}

	if err := os.Remove(clean); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// Dir returns the root directory, for mounting a file server over it.
func (s *FSStore) Dir() string { return s.dir }

func (s *FSStore) resolve(blobPath string) (string, error) {
	clean := path.Clean("/" + blobPath)
	if clean == "/" || strings.Contains(blobPath, "..") {
		return "", fmt.Errorf("invalid blob path %q", blobPath)
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), nil
}
