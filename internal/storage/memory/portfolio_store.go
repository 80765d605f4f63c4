package memory

import (
	"context"
	"sync"

	"trade-state/internal/domain"
	"trade-state/internal/storage"
)

// PortfolioStore is an in-memory implementation of
// storage.PortfolioStore holding the single latest snapshot.
type PortfolioStore struct {
	mu    sync.RWMutex
	state *domain.PortfolioState
}

// NewPortfolioStore creates a new in-memory portfolio store.
func NewPortfolioStore() *PortfolioStore {
	return &PortfolioStore{}
}

// Snapshot retrieves the latest portfolio state. Returns ErrNotFound
// if no snapshot has ever been written.
func (s *PortfolioStore) Snapshot(_ context.Context) (*domain.PortfolioState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return nil, storage.ErrNotFound
	}
	return s.state.Clone(), nil
}

// Put replaces the portfolio snapshot.
func (s *PortfolioStore) Put(_ context.Context, state *domain.PortfolioState) error {
	if state == nil {
		return storage.ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state.Clone()
	return nil
}

var _ storage.PortfolioStore = (*PortfolioStore)(nil)
