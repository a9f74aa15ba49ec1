package storage

import (
	"context"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
)

// SimulationRunStore provides access to simulation_runs storage.
type SimulationRunStore interface {
	// Insert adds a new run. Returns ErrDuplicateKey if run_id exists.
	Insert(ctx context.Context, run *domain.SimulationRun) error

	// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, runID string) (*domain.SimulationRun, error)

	// GetByChain retrieves all runs for a chain, ordered by created_at ASC.
	GetByChain(ctx context.Context, chainName string) ([]*domain.SimulationRun, error)

	// List retrieves all runs, ordered by created_at ASC.
	List(ctx context.Context) ([]*domain.SimulationRun, error)
}

// WeeklyResultStore provides access to weekly_results storage.
type WeeklyResultStore interface {
	// InsertBulk adds all weekly results of a run. Fails the entire
	// batch on duplicate (run_id, week).
	InsertBulk(ctx context.Context, runID string, results []domain.WeeklyResult) error

	// GetByRunID retrieves all results for a run, ordered by week ASC.
	GetByRunID(ctx context.Context, runID string) ([]domain.WeeklyResult, error)
}
