package memory

import (
	"context"
	"sync"
	"time"

	"github.com/16SULPHUR/courseify/contexts/catalog-experience/location-service/ports"
)

type Store struct {
	mu    sync.RWMutex
	prefs map[string]ports.PreferenceRecord
}

func NewStore() *Store {
	return &Store{prefs: make(map[string]ports.PreferenceRecord)}
}

func (s *Store) Get(_ context.Context, sessionID string) (ports.PreferenceRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.prefs[sessionID]
	return record, ok, nil
}

func (s *Store) Put(_ context.Context, record ports.PreferenceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[record.SessionID] = record
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
