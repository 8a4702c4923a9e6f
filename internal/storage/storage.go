// Package storage persists uploaded resume files on local disk. Files are
// renamed to a generated identifier on save so user-supplied names never
// reach the filesystem.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowedExtensions lists the resume formats accepted for upload.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Store writes and reads resume files under a single directory.
type Store struct {
	dir      string
	maxBytes int64
}

// New creates the storage directory if needed and returns a store over it.
func New(dir string, maxBytes int64) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

// Allowed reports whether the uploaded filename carries an accepted resume
// extension.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Save writes resume data to disk under a generated name that keeps the
// original extension, and returns that name for persistence on the
// application record.
func (s *Store) Save(originalName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported resume format %q", ext)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("resume exceeds maximum size of %d bytes", s.maxBytes)
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write resume file: %w", err)
	}
	return name, nil
}

// Read returns the stored resume bytes for a previously saved name. Names
// containing path separators are rejected so stored names cannot escape the
// storage directory.
func (s *Store) Read(name string) ([]byte, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid resume name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	return data, nil
}
