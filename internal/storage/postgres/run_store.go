package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
	"github.com/SkinxH/RPCfi-TRON/internal/storage"
)

// SimulationRunStore implements storage.SimulationRunStore using
// PostgreSQL.
type SimulationRunStore struct {
	pool *Pool
}

// NewSimulationRunStore creates a new SimulationRunStore.
func NewSimulationRunStore(pool *Pool) *SimulationRunStore {
	return &SimulationRunStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SimulationRunStore = (*SimulationRunStore)(nil)

// Insert adds a new run. Returns ErrDuplicateKey if run_id exists.
func (s *SimulationRunStore) Insert(ctx context.Context, run *domain.SimulationRun) error {
	if run == nil || run.RunID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO simulation_runs (
			run_id, chain_name, growth_strategy, scenario_id, apy_percent,
			period_start, period_end, weeks,
			total_revenue_usd, total_buyback_usd, final_lp_tvl_usd,
			cumulative_dev_yield_usd, cumulative_foundation_yield_usd,
			created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, $11,
			$12, $13,
			$14
		)
	`

	_, err := s.pool.Exec(ctx, query,
		run.RunID, run.ChainName, run.GrowthStrategy, run.ScenarioID, run.APYPercent,
		run.PeriodStart, run.PeriodEnd, run.Weeks,
		run.TotalRevenueUSD, run.TotalBuybackUSD, run.FinalLPTVLUSD,
		run.CumulativeDevYieldUSD, run.CumulativeFoundationYieldUSD,
		run.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert simulation run: %w", err)
	}
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *SimulationRunStore) GetByID(ctx context.Context, runID string) (*domain.SimulationRun, error) {
	query := selectRuns + ` WHERE run_id = $1`

	row := s.pool.QueryRow(ctx, query, runID)
	run, err := scanRun(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get simulation run: %w", err)
	}
	return run, nil
}

// GetByChain retrieves all runs for a chain, ordered by created_at ASC.
func (s *SimulationRunStore) GetByChain(ctx context.Context, chainName string) ([]*domain.SimulationRun, error) {
	query := selectRuns + ` WHERE chain_name = $1 ORDER BY created_at ASC, run_id ASC`

	rows, err := s.pool.Query(ctx, query, chainName)
	if err != nil {
		return nil, fmt.Errorf("query runs by chain: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// List retrieves all runs, ordered by created_at ASC.
func (s *SimulationRunStore) List(ctx context.Context) ([]*domain.SimulationRun, error) {
	query := selectRuns + ` ORDER BY created_at ASC, run_id ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

const selectRuns = `
	SELECT run_id, chain_name, growth_strategy, scenario_id, apy_percent,
		period_start, period_end, weeks,
		total_revenue_usd, total_buyback_usd, final_lp_tvl_usd,
		cumulative_dev_yield_usd, cumulative_foundation_yield_usd,
		created_at
	FROM simulation_runs
`

// scanRun scans a single run row.
func scanRun(row pgx.Row) (*domain.SimulationRun, error) {
	var run domain.SimulationRun
	err := row.Scan(
		&run.RunID, &run.ChainName, &run.GrowthStrategy, &run.ScenarioID, &run.APYPercent,
		&run.PeriodStart, &run.PeriodEnd, &run.Weeks,
		&run.TotalRevenueUSD, &run.TotalBuybackUSD, &run.FinalLPTVLUSD,
		&run.CumulativeDevYieldUSD, &run.CumulativeFoundationYieldUSD,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// scanRuns scans all run rows.
func scanRuns(rows pgx.Rows) ([]*domain.SimulationRun, error) {
	var runs []*domain.SimulationRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
