package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bobmcallan/toolgate/internal/common"
	"github.com/bobmcallan/toolgate/internal/models"
	"github.com/bobmcallan/toolgate/internal/storage"
)

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(common.NewSilentLogger())

	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestHealthHandlerRejectsPost(t *testing.T) {
	h := NewHealthHandler(common.NewSilentLogger())

	req := httptest.NewRequest("POST", "/api/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestVersionHandler(t *testing.T) {
	h := NewVersionHandler(common.NewSilentLogger())

	req := httptest.NewRequest("GET", "/api/version", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	for _, key := range []string{"version", "build", "commit"} {
		if _, ok := body[key]; !ok {
			t.Errorf("expected %q in version response", key)
		}
	}
}

func TestHistoryHandler(t *testing.T) {
	store := storage.NewMemoryStore()
	for i := 0; i < 3; i++ {
		_ = store.Record(context.Background(), models.InvocationRecord{
			ID:   "inv",
			Tool: "Math.Add",
		})
	}
	h := NewHistoryHandler(common.NewSilentLogger(), store)

	req := httptest.NewRequest("GET", "/api/history?limit=2", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var recs []models.InvocationRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &recs); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("expected 2 records, got %d", len(recs))
	}
}

type failingStore struct{}

func (failingStore) Record(context.Context, models.InvocationRecord) error { return nil }
func (failingStore) Recent(context.Context, int) ([]models.InvocationRecord, error) {
	return nil, errors.New("store offline")
}
func (failingStore) Close() error { return nil }

func TestHistoryHandlerStoreFailure(t *testing.T) {
	h := NewHistoryHandler(common.NewSilentLogger(), failingStore{})

	req := httptest.NewRequest("GET", "/api/history", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
