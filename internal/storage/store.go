// Package storage persists document blobs on local disk under a fixed
// per-tenant layout: documents/<tenant-slug>/<client-id>/<filename>.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var ErrFileMissing = errors.New("stored file missing")

type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// DocumentPath derives the relative storage path for a document. The
// filename is reduced to its base name so client-supplied paths cannot
// escape the tenant directory.
func DocumentPath(tenantSlug string, clientID uuid.UUID, filename string) string {
	return filepath.Join("documents", tenantSlug, clientID.String(), filepath.Base(filename))
}

// Save writes the file under the document path convention and returns the
// relative path recorded on the Document row.
func (s *Store) Save(tenantSlug string, clientID uuid.UUID, filename string, r io.Reader) (string, error) {
	rel := DocumentPath(tenantSlug, clientID, filename)
	abs := filepath.Join(s.root, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("write file: %w", err)
	}
	return rel, nil
}

// Open returns a reader over a stored file. ErrFileMissing maps to the
// caller's not-found response.
func (s *Store) Open(rel string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.root, rel))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrFileMissing
	}
	return f, err
}

// Exists reports whether the backing file is present.
func (s *Store) Exists(rel string) bool {
	_, err := os.Stat(filepath.Join(s.root, rel))
	return err == nil
}

// Delete removes a stored file. A missing file is not an error; the metadata
// delete already happened or is about to, and there is nothing to clean up.
func (s *Store) Delete(rel string) error {
	err := os.Remove(filepath.Join(s.root, rel))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// AbsPath resolves a relative path against the storage root.
func (s *Store) AbsPath(rel string) string {
	return filepath.Join(s.root, rel)
}
