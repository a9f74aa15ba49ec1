package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
	"github.com/SkinxH/RPCfi-TRON/internal/storage"
)

// SimulationRunStore is an in-memory implementation of
// storage.SimulationRunStore.
type SimulationRunStore struct {
	mu   sync.RWMutex
	data map[string]*domain.SimulationRun // keyed by run_id
}

// NewSimulationRunStore creates a new in-memory run store.
func NewSimulationRunStore() *SimulationRunStore {
	return &SimulationRunStore{
		data: make(map[string]*domain.SimulationRun),
	}
}

// Compile-time interface check.
var _ storage.SimulationRunStore = (*SimulationRunStore)(nil)

// Insert adds a new run. Returns ErrDuplicateKey if run_id exists.
func (s *SimulationRunStore) Insert(_ context.Context, run *domain.SimulationRun) error {
	if run == nil || run.RunID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[run.RunID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *run
	s.data[run.RunID] = &copy
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *SimulationRunStore) GetByID(_ context.Context, runID string) (*domain.SimulationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.data[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *run
	return &copy, nil
}

// GetByChain retrieves all runs for a chain, ordered by created_at ASC.
func (s *SimulationRunStore) GetByChain(_ context.Context, chainName string) ([]*domain.SimulationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var runs []*domain.SimulationRun
	for _, run := range s.data {
		if run.ChainName == chainName {
			copy := *run
			runs = append(runs, &copy)
		}
	}

	sortRuns(runs)
	return runs, nil
}

// List retrieves all runs, ordered by created_at ASC.
func (s *SimulationRunStore) List(_ context.Context) ([]*domain.SimulationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*domain.SimulationRun, 0, len(s.data))
	for _, run := range s.data {
		copy := *run
		runs = append(runs, &copy)
	}

	sortRuns(runs)
	return runs, nil
}

// sortRuns orders by created_at ASC, run_id ASC for a stable order.
func sortRuns(runs []*domain.SimulationRun) {
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.Before(runs[j].CreatedAt)
		}
		return runs[i].RunID < runs[j].RunID
	})
}
