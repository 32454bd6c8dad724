// Package storage holds the image storage collaborator: uploaded bytes in,
// stable reference URL out. The API core only ever sees the URL.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore persists uploaded images and returns a reference URL.
type ImageStore interface {
	Save(recordID uuid.UUID, filename string, r io.Reader) (string, error)
}

// DiskStore writes images under root/records/<record-id>/ and serves them
// from baseURL. A CDN-backed implementation can replace it without
// touching the services.
type DiskStore struct {
	root    string
	baseURL string
}

func NewDiskStore(root, baseURL string) *DiskStore {
	return &DiskStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *DiskStore) Save(recordID uuid.UUID, filename string, r io.Reader) (string, error) {
	name := sanitizeFilename(filename)
	// Prefix with a short random id so repeated uploads of the same
	// filename never overwrite each other.
	name = uuid.NewString()[:8] + "_" + name

	dir := filepath.Join(s.root, "records", recordID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/records/%s/%s", s.baseURL, recordID.String(), name), nil
}

func sanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
