package consumption

import (
	"context"
	"sync"
)

// MarkerStore persists the last day a job completed, keyed by job name.
// LastDay returns "" for a job that never completed.
type MarkerStore interface {
	LastDay(ctx context.Context, key string) (string, error)
	SetLastDay(ctx context.Context, key, day string) error
}

type memoryMarkerStore struct {
	mu   sync.Mutex
	days map[string]string
}

func NewMemoryMarkerStore() MarkerStore {
	return &memoryMarkerStore{days: map[string]string{}}
}

func (s *memoryMarkerStore) LastDay(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.days[key], nil
}

func (s *memoryMarkerStore) SetLastDay(ctx context.Context, key, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[key] = day
	return nil
}
