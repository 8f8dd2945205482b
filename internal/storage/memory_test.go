package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bobmcallan/toolgate/internal/models"
)

func TestMemoryStoreRecentNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		rec := models.InvocationRecord{
			ID:         fmt.Sprintf("inv-%d", i),
			Tool:       "Math.Add",
			Success:    true,
			FinishedAt: time.Now().UTC(),
		}
		if err := s.Record(ctx, rec); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	recent, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recent))
	}
	if recent[0].ID != "inv-4" || recent[2].ID != "inv-2" {
		t.Errorf("expected newest first, got %v then %v", recent[0].ID, recent[2].ID)
	}
}

func TestMemoryStoreLimitLargerThanSize(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Record(ctx, models.InvocationRecord{ID: "only"})

	recent, err := s.Recent(ctx, 50)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("expected 1 record, got %d", len(recent))
	}
}

func TestMemoryStoreEviction(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < maxMemoryRecords+10; i++ {
		_ = s.Record(ctx, models.InvocationRecord{ID: fmt.Sprintf("inv-%d", i)})
	}

	recent, err := s.Recent(ctx, maxMemoryRecords*2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != maxMemoryRecords {
		t.Fatalf("expected the store to cap at %d records, got %d", maxMemoryRecords, len(recent))
	}
	if recent[0].ID != fmt.Sprintf("inv-%d", maxMemoryRecords+9) {
		t.Errorf("expected the newest record to survive eviction, got %s", recent[0].ID)
	}
	last := recent[len(recent)-1]
	if last.ID != "inv-10" {
		t.Errorf("expected the oldest 10 records to be evicted, got %s", last.ID)
	}
}
