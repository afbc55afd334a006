package memory

import (
	"context"
	"sync"
	"time"

	"github.com/16SULPHUR/courseify/contexts/identity-access/session-service/ports"
)

type Store struct {
	mu      sync.RWMutex
	records map[string]ports.SessionRecord
}

func NewStore() *Store {
	return &Store{records: make(map[string]ports.SessionRecord)}
}

func (s *Store) Get(_ context.Context, sessionID string) (ports.SessionRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[sessionID]
	return record, ok, nil
}

func (s *Store) Put(_ context.Context, record ports.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.SessionID] = record
	return nil
}

func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sessionID)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
