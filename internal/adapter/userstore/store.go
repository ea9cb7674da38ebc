// Package userstore persists the flight-planning user identifier as a small
// JSON document: a single JSON string.
package userstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore implements fetch.UserStore on a local file.
type FileStore struct {
	path string
}

// New returns a store backed by path. The file need not exist yet.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Path is the backing file.
func (s *FileStore) Path() string { return s.path }

// Load returns the saved identifier. A missing, unreadable, or malformed
// document reads as "nothing saved".
func (s *FileStore) Load() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return "", false
	}
	return id, true
}

// Save replaces the document with id. The write goes through a temporary file
// in the same directory so a failed save leaves the previous value intact.
func (s *FileStore) Save(id string) error {
	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user id: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save user id: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		return errors.Join(fmt.Errorf("save user id: %w", err), tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save user id: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save user id: %w", err)
	}
	return nil
}
