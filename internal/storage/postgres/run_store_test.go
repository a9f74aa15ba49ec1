package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
	"github.com/SkinxH/RPCfi-TRON/internal/storage"
	"github.com/SkinxH/RPCfi-TRON/internal/storage/postgres"
)

func testRun(runID, chain, scenario string, createdAt time.Time) *domain.SimulationRun {
	return &domain.SimulationRun{
		RunID:                        runID,
		ChainName:                    chain,
		GrowthStrategy:               domain.GrowthStrategyMilestone,
		ScenarioID:                   scenario,
		APYPercent:                   30,
		PeriodStart:                  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:                    time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Weeks:                        96,
		TotalRevenueUSD:              1_250_000,
		TotalBuybackUSD:              625_000,
		FinalLPTVLUSD:                725_000,
		CumulativeDevYieldUSD:        41_300.5,
		CumulativeFoundationYieldUSD: 55_384.61,
		CreatedAt:                    createdAt,
	}
}

func TestSimulationRunStore_InsertAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewSimulationRunStore(pool)
	ctx := context.Background()

	run := testRun("run-001", "tron", "base", time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))

	err := store.Insert(ctx, run)
	require.NoError(t, err)

	retrieved, err := store.GetByID(ctx, "run-001")
	require.NoError(t, err)

	assert.Equal(t, run.RunID, retrieved.RunID)
	assert.Equal(t, run.ChainName, retrieved.ChainName)
	assert.Equal(t, run.GrowthStrategy, retrieved.GrowthStrategy)
	assert.Equal(t, run.ScenarioID, retrieved.ScenarioID)
	assert.Equal(t, run.APYPercent, retrieved.APYPercent)
	assert.True(t, run.PeriodStart.Equal(retrieved.PeriodStart))
	assert.True(t, run.PeriodEnd.Equal(retrieved.PeriodEnd))
	assert.Equal(t, run.Weeks, retrieved.Weeks)
	assert.Equal(t, run.TotalRevenueUSD, retrieved.TotalRevenueUSD)
	assert.Equal(t, run.TotalBuybackUSD, retrieved.TotalBuybackUSD)
	assert.Equal(t, run.FinalLPTVLUSD, retrieved.FinalLPTVLUSD)
	assert.Equal(t, run.CumulativeDevYieldUSD, retrieved.CumulativeDevYieldUSD)
	assert.Equal(t, run.CumulativeFoundationYieldUSD, retrieved.CumulativeFoundationYieldUSD)
	assert.True(t, run.CreatedAt.Equal(retrieved.CreatedAt))
}

func TestSimulationRunStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewSimulationRunStore(pool)
	ctx := context.Background()

	run := testRun("run-dup", "tron", "base", time.Now().UTC())

	err := store.Insert(ctx, run)
	require.NoError(t, err)

	err = store.Insert(ctx, run)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestSimulationRunStore_InsertInvalid(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewSimulationRunStore(pool)
	ctx := context.Background()

	err := store.Insert(ctx, nil)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	err = store.Insert(ctx, &domain.SimulationRun{})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

func TestSimulationRunStore_GetByIDNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewSimulationRunStore(pool)
	ctx := context.Background()

	_, err := store.GetByID(ctx, "nonexistent-run")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSimulationRunStore_GetByChain(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewSimulationRunStore(pool)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	runs := []*domain.SimulationRun{
		testRun("run-tron-1", "tron", "worst", base),
		testRun("run-tron-2", "tron", "base", base.Add(time.Hour)),
		testRun("run-avax-1", "avax", "base", base.Add(2*time.Hour)),
	}
	for _, run := range runs {
		require.NoError(t, store.Insert(ctx, run))
	}

	tronRuns, err := store.GetByChain(ctx, "tron")
	require.NoError(t, err)
	require.Len(t, tronRuns, 2)

	// Ordered by created_at ASC
	assert.Equal(t, "run-tron-1", tronRuns[0].RunID)
	assert.Equal(t, "run-tron-2", tronRuns[1].RunID)

	avaxRuns, err := store.GetByChain(ctx, "avax")
	require.NoError(t, err)
	require.Len(t, avaxRuns, 1)
	assert.Equal(t, "run-avax-1", avaxRuns[0].RunID)

	empty, err := store.GetByChain(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSimulationRunStore_List(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewSimulationRunStore(pool)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Insert(ctx, testRun("run-b", "tron", "best", base.Add(time.Hour))))
	require.NoError(t, store.Insert(ctx, testRun("run-a", "avax", "worst", base)))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, "run-a", all[0].RunID)
	assert.Equal(t, "run-b", all[1].RunID)
}
