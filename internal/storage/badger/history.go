package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/toolgate/internal/common"
	"github.com/bobmcallan/toolgate/internal/models"
)

// HistoryStore persists invocation records in BadgerDB.
type HistoryStore struct {
	db     *BadgerDB
	logger *common.Logger
}

// NewHistoryStore creates an invocation history store backed by BadgerDB.
func NewHistoryStore(db *BadgerDB, logger *common.Logger) *HistoryStore {
	return &HistoryStore{
		db:     db,
		logger: logger,
	}
}

// Record stores one completed invocation.
func (s *HistoryStore) Record(_ context.Context, rec models.InvocationRecord) error {
	if err := s.db.Store().Upsert(rec.ID, &rec); err != nil {
		return fmt.Errorf("failed to record invocation %s: %w", rec.ID, err)
	}
	return nil
}

// Recent returns the most recent invocations, newest first.
func (s *HistoryStore) Recent(_ context.Context, limit int) ([]models.InvocationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var recs []models.InvocationRecord
	q := badgerhold.Where("FinishedAt").Ge(time.Time{}).SortBy("FinishedAt").Reverse().Limit(limit)
	if err := s.db.Store().Find(&recs, q); err != nil {
		return nil, fmt.Errorf("failed to query invocation history: %w", err)
	}
	return recs, nil
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
