package clickhouse

import (
	"context"
	"fmt"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
	"github.com/SkinxH/RPCfi-TRON/internal/storage"
)

// WeeklyResultStore implements storage.WeeklyResultStore using
// ClickHouse. One run's result series is written once and never
// updated.
type WeeklyResultStore struct {
	conn *Conn
}

// NewWeeklyResultStore creates a new WeeklyResultStore.
func NewWeeklyResultStore(conn *Conn) *WeeklyResultStore {
	return &WeeklyResultStore{conn: conn}
}

// Compile-time interface check.
var _ storage.WeeklyResultStore = (*WeeklyResultStore)(nil)

// InsertBulk adds all weekly results of a run. Fails the entire batch on
// duplicate (run_id, week). MergeTree does not enforce uniqueness, so
// duplicates are checked explicitly before the batch is sent.
func (s *WeeklyResultStore) InsertBulk(ctx context.Context, runID string, results []domain.WeeklyResult) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(results) == 0 {
		return nil
	}

	// Intra-batch duplicates
	seen := make(map[int]struct{}, len(results))
	for _, w := range results {
		if _, exists := seen[w.Week]; exists {
			return storage.ErrDuplicateKey
		}
		seen[w.Week] = struct{}{}
	}

	// Existing rows for this run
	exists, err := s.runExists(ctx, runID)
	if err != nil {
		return fmt.Errorf("check existing run: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO weekly_results (
			run_id, week, date, revenue_usd,
			native_buyback_usd, governance_buyback_usd,
			native_units, governance_units,
			weekly_lp_value_usd, cumulative_dev_lp_usd, total_lp_tvl_usd,
			dev_weekly_yield_usd, foundation_weekly_yield_usd,
			cumulative_dev_yield_usd, cumulative_foundation_yield_usd
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, w := range results {
		err = batch.Append(
			runID, uint32(w.Week), w.Date, w.RevenueUSD,
			w.NativeBuybackUSD, w.GovernanceBuybackUSD,
			w.NativeUnits, w.GovernanceUnits,
			w.WeeklyLPValueUSD, w.CumulativeDevLPUSD, w.TotalLPTVLUSD,
			w.DevWeeklyYieldUSD, w.FoundationWeeklyYieldUSD,
			w.CumulativeDevYieldUSD, w.CumulativeFoundationYieldUSD,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByRunID retrieves all results for a run, ordered by week ASC.
func (s *WeeklyResultStore) GetByRunID(ctx context.Context, runID string) ([]domain.WeeklyResult, error) {
	query := `
		SELECT week, date, revenue_usd,
			native_buyback_usd, governance_buyback_usd,
			native_units, governance_units,
			weekly_lp_value_usd, cumulative_dev_lp_usd, total_lp_tvl_usd,
			dev_weekly_yield_usd, foundation_weekly_yield_usd,
			cumulative_dev_yield_usd, cumulative_foundation_yield_usd
		FROM weekly_results
		WHERE run_id = ?
		ORDER BY week ASC
	`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query weekly results: %w", err)
	}
	defer rows.Close()

	var results []domain.WeeklyResult
	for rows.Next() {
		var w domain.WeeklyResult
		var week uint32
		err := rows.Scan(
			&week, &w.Date, &w.RevenueUSD,
			&w.NativeBuybackUSD, &w.GovernanceBuybackUSD,
			&w.NativeUnits, &w.GovernanceUnits,
			&w.WeeklyLPValueUSD, &w.CumulativeDevLPUSD, &w.TotalLPTVLUSD,
			&w.DevWeeklyYieldUSD, &w.FoundationWeeklyYieldUSD,
			&w.CumulativeDevYieldUSD, &w.CumulativeFoundationYieldUSD,
		)
		if err != nil {
			return nil, fmt.Errorf("scan weekly result: %w", err)
		}
		w.Week = int(week)
		results = append(results, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weekly results: %w", err)
	}

	if len(results) == 0 {
		return nil, storage.ErrNotFound
	}

	return results, nil
}

// runExists reports whether any rows exist for a run.
func (s *WeeklyResultStore) runExists(ctx context.Context, runID string) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx,
		`SELECT count() FROM weekly_results WHERE run_id = ?`, runID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
