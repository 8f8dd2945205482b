package storage

import (
	"context"
	"sync"

	"github.com/bobmcallan/toolgate/internal/models"
)

// maxMemoryRecords bounds the in-memory history so a long-running worker
// without persistent storage does not grow without limit.
const maxMemoryRecords = 1000

// MemoryStore is an in-memory InvocationStore used when persistent
// storage is disabled, and in tests.
type MemoryStore struct {
	mu   sync.Mutex
	recs []models.InvocationRecord
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record appends an invocation record, evicting the oldest when full.
func (s *MemoryStore) Record(_ context.Context, rec models.InvocationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	if len(s.recs) > maxMemoryRecords {
		s.recs = s.recs[len(s.recs)-maxMemoryRecords:]
	}
	return nil
}

// Recent returns the most recent records, newest first.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]models.InvocationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.recs)
	if limit > n {
		limit = n
	}
	out := make([]models.InvocationRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.recs[i])
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
