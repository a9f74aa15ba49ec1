package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
	"github.com/SkinxH/RPCfi-TRON/internal/storage"
)

func testResults(weeks int) []domain.WeeklyResult {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	results := make([]domain.WeeklyResult, 0, weeks)
	for i := 0; i < weeks; i++ {
		results = append(results, domain.WeeklyResult{
			Week:       i + 1,
			Date:       base.AddDate(0, 0, 7*i),
			RevenueUSD: 10000,
		})
	}
	return results
}

func TestWeeklyResultStore_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewWeeklyResultStore()

	if err := store.InsertBulk(ctx, "run-1", testResults(8)); err != nil {
		t.Fatalf("InsertBulk: %v", err)
	}

	got, err := store.GetByRunID(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetByRunID: %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("expected 8 results, got %d", len(got))
	}
	for i, w := range got {
		if w.Week != i+1 {
			t.Fatalf("result %d has week %d", i, w.Week)
		}
	}
}

func TestWeeklyResultStore_DuplicateWeek(t *testing.T) {
	ctx := context.Background()
	store := NewWeeklyResultStore()

	if err := store.InsertBulk(ctx, "run-1", testResults(4)); err != nil {
		t.Fatalf("InsertBulk: %v", err)
	}

	// Overlapping weeks fail the whole batch.
	err := store.InsertBulk(ctx, "run-1", testResults(4))
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	got, err := store.GetByRunID(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetByRunID: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("failed batch partially applied: %d results", len(got))
	}
}

func TestWeeklyResultStore_IntraBatchDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewWeeklyResultStore()

	batch := testResults(2)
	batch[1].Week = 1

	if err := store.InsertBulk(ctx, "run-1", batch); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestWeeklyResultStore_RunIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewWeeklyResultStore()

	if err := store.InsertBulk(ctx, "run-1", testResults(4)); err != nil {
		t.Fatalf("InsertBulk run-1: %v", err)
	}
	// Same weeks under a different run do not collide.
	if err := store.InsertBulk(ctx, "run-2", testResults(4)); err != nil {
		t.Fatalf("InsertBulk run-2: %v", err)
	}
}

func TestWeeklyResultStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewWeeklyResultStore()

	if _, err := store.GetByRunID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWeeklyResultStore_EmptyBatch(t *testing.T) {
	ctx := context.Background()
	store := NewWeeklyResultStore()

	if err := store.InsertBulk(ctx, "run-1", nil); err != nil {
		t.Fatalf("empty batch should be a no-op, got %v", err)
	}
	if err := store.InsertBulk(ctx, "", testResults(1)); !errors.Is(err, storage.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty run id, got %v", err)
	}
}
