// Package file keeps the session in a small JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/roxiler/storerating-client/internal/core/ports"
)

type document struct {
	Token string `json:"token"`
	User  string `json:"user"`
}

// SessionStorage stores both session keys in one file so they are always
// replaced together. Writes go to a temp file that is renamed into place.
type SessionStorage struct {
	path string
	mu   sync.Mutex
}

var _ ports.SessionStorage = (*SessionStorage)(nil)

func NewSessionStorage(path string) *SessionStorage {
	return &SessionStorage{path: path}
}

func (s *SessionStorage) Path() string { return s.path }

// Read returns the empty record when the file does not exist.
func (s *SessionStorage) Read(_ context.Context) (ports.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return ports.SessionRecord{}, nil
	}
	if err != nil {
		return ports.SessionRecord{}, fmt.Errorf("read session file: %w", err)
	}
	if len(data) == 0 {
		return ports.SessionRecord{}, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return ports.SessionRecord{}, fmt.Errorf("decode session file: %w", err)
	}
	return ports.SessionRecord{Token: doc.Token, User: doc.User}, nil
}

func (s *SessionStorage) Write(_ context.Context, rec ports.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(document{Token: rec.Token, User: rec.User}, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// Clear removes the file. A missing file is not an error.
func (s *SessionStorage) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
