package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
	"github.com/SkinxH/RPCfi-TRON/internal/storage"
)

// WeeklyResultStore is an in-memory implementation of
// storage.WeeklyResultStore.
type WeeklyResultStore struct {
	mu   sync.RWMutex
	data map[string][]domain.WeeklyResult // keyed by run_id, ordered by week
}

// NewWeeklyResultStore creates a new in-memory weekly result store.
func NewWeeklyResultStore() *WeeklyResultStore {
	return &WeeklyResultStore{
		data: make(map[string][]domain.WeeklyResult),
	}
}

// Compile-time interface check.
var _ storage.WeeklyResultStore = (*WeeklyResultStore)(nil)

// InsertBulk adds all weekly results of a run. Fails the entire batch on
// duplicate (run_id, week).
func (s *WeeklyResultStore) InsertBulk(_ context.Context, runID string, results []domain.WeeklyResult) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(results) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[int]struct{}, len(s.data[runID]))
	for _, w := range s.data[runID] {
		existing[w.Week] = struct{}{}
	}

	// First pass: reject on any existing or intra-batch duplicate.
	batchWeeks := make(map[int]struct{}, len(results))
	for _, w := range results {
		if _, dup := existing[w.Week]; dup {
			return storage.ErrDuplicateKey
		}
		if _, dup := batchWeeks[w.Week]; dup {
			return storage.ErrDuplicateKey
		}
		batchWeeks[w.Week] = struct{}{}
	}

	s.data[runID] = append(s.data[runID], results...)
	return nil
}

// GetByRunID retrieves all results for a run, ordered by week ASC.
func (s *WeeklyResultStore) GetByRunID(_ context.Context, runID string) ([]domain.WeeklyResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, exists := s.data[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	results := make([]domain.WeeklyResult, len(stored))
	copy(results, stored)
	sort.Slice(results, func(i, j int) bool { return results[i].Week < results[j].Week })
	return results, nil
}
