// Package memory keeps the session for the lifetime of the process only.
package memory

import (
	"context"
	"sync"

	"github.com/roxiler/storerating-client/internal/core/ports"
)

type SessionStorage struct {
	mu  sync.Mutex
	rec ports.SessionRecord
}

var _ ports.SessionStorage = (*SessionStorage)(nil)

func NewSessionStorage() *SessionStorage { return &SessionStorage{} }

func (s *SessionStorage) Read(context.Context) (ports.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec, nil
}

func (s *SessionStorage) Write(_ context.Context, rec ports.SessionRecord) error {
	s.mu.Lock()
	s.rec = rec
	s.mu.Unlock()
	return nil
}

func (s *SessionStorage) Clear(context.Context) error {
	s.mu.Lock()
	s.rec = ports.SessionRecord{}
	s.mu.Unlock()
	return nil
}
