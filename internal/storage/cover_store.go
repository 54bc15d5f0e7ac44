// Package storage implements the file-storage collaborator that persists
// uploaded cover images and returns retrievable paths. The application only
// depends on the CoverStore interface; DiskStore is the local implementation
// used in production and tests alike.
package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// CoverStore persists cover images and removes them when their
// advertisement goes away.
type CoverStore interface {
	// Save writes the image and returns its storage-relative path.
	// The original filename is only consulted for its extension.
	Save(filename string, r io.Reader) (string, error)

	// Remove deletes a previously stored image. Removing an empty path or
	// an already-missing file is not an error.
	Remove(path string) error
}

// DiskStore stores covers as flat files under a root directory.
type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory if needed and returns the store.
func NewDiskStore(root string) (*DiskStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("storage: empty root directory")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{root: root}, nil
}

// Save streams the upload into a uniquely named file. Names are random UUIDs
// so concurrent uploads and duplicate client filenames never collide.
func (s *DiskStore) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return name, nil
}

// Remove deletes the stored file. Empty paths and missing files are no-ops;
// path components are rejected so a stored path can never escape the root.
func (s *DiskStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if filepath.Base(path) != path {
		return errors.New("storage: invalid cover path")
	}
	err := os.Remove(filepath.Join(s.root, path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Root returns the directory covers are stored in (used to serve files).
func (s *DiskStore) Root() string { return s.root }
