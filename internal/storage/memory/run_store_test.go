package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
	"github.com/SkinxH/RPCfi-TRON/internal/storage"
)

func testRun(id, chain string, createdAt time.Time) *domain.SimulationRun {
	return &domain.SimulationRun{
		RunID:          id,
		ChainName:      chain,
		GrowthStrategy: domain.GrowthStrategyMilestone,
		ScenarioID:     "base",
		APYPercent:     30,
		Weeks:          96,
		CreatedAt:      createdAt,
	}
}

func TestRunStore_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewSimulationRunStore()

	run := testRun("run-1", "Tron", time.Now().UTC())
	if err := store.Insert(ctx, run); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := store.GetByID(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ChainName != "Tron" || got.Weeks != 96 {
		t.Errorf("unexpected run: %+v", got)
	}

	// Stored copy is isolated from caller mutation.
	run.ChainName = "mutated"
	got, err = store.GetByID(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ChainName != "Tron" {
		t.Errorf("store leaked caller reference: %s", got.ChainName)
	}
}

func TestRunStore_DuplicateKey(t *testing.T) {
	ctx := context.Background()
	store := NewSimulationRunStore()

	run := testRun("run-1", "Tron", time.Now().UTC())
	if err := store.Insert(ctx, run); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := store.Insert(ctx, run); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestRunStore_InvalidInput(t *testing.T) {
	ctx := context.Background()
	store := NewSimulationRunStore()

	if err := store.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil, got %v", err)
	}
	if err := store.Insert(ctx, &domain.SimulationRun{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty run_id, got %v", err)
	}
}

func TestRunStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewSimulationRunStore()

	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRunStore_GetByChainAndList(t *testing.T) {
	ctx := context.Background()
	store := NewSimulationRunStore()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, run := range []*domain.SimulationRun{
		testRun("run-c", "Tron", base.Add(2*time.Hour)),
		testRun("run-a", "Tron", base),
		testRun("run-b", "Avalanche", base.Add(time.Hour)),
	} {
		if err := store.Insert(ctx, run); err != nil {
			t.Fatalf("Insert %s: %v", run.RunID, err)
		}
	}

	tron, err := store.GetByChain(ctx, "Tron")
	if err != nil {
		t.Fatalf("GetByChain: %v", err)
	}
	if len(tron) != 2 || tron[0].RunID != "run-a" || tron[1].RunID != "run-c" {
		t.Errorf("unexpected chain runs: %+v", tron)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].RunID != "run-a" || all[2].RunID != "run-c" {
		t.Errorf("unexpected list order: %+v", all)
	}
}
