package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"trade-state/internal/domain"
	"trade-state/internal/storage"
)

// PortfolioStore implements storage.PortfolioStore using PostgreSQL.
// The snapshot occupies a single fixed row; positions are stored as a
// JSONB column since their set of symbols is open-ended.
type PortfolioStore struct {
	pool *Pool
}

// NewPortfolioStore creates a new PostgreSQL-backed portfolio store.
func NewPortfolioStore(pool *Pool) *PortfolioStore {
	return &PortfolioStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PortfolioStore = (*PortfolioStore)(nil)

// Snapshot retrieves the latest portfolio state. Returns ErrNotFound
// if no snapshot has ever been written.
func (s *PortfolioStore) Snapshot(ctx context.Context) (*domain.PortfolioState, error) {
	query := `
		SELECT cash, positions, total_value, updated_at
		FROM portfolio_state
		WHERE id = 1
	`

	var state domain.PortfolioState
	var positions []byte

	row := s.pool.QueryRow(ctx, query)
	err := row.Scan(&state.Cash, &positions, &state.TotalValue, &state.UpdatedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get portfolio snapshot: %w", err)
	}

	if len(positions) > 0 {
		if err := json.Unmarshal(positions, &state.Positions); err != nil {
			return nil, fmt.Errorf("decode portfolio positions: %w", err)
		}
	}
	return &state, nil
}

// Put replaces the portfolio snapshot.
func (s *PortfolioStore) Put(ctx context.Context, state *domain.PortfolioState) error {
	if state == nil {
		return storage.ErrInvalidRecord
	}

	positions, err := json.Marshal(state.Positions)
	if err != nil {
		return fmt.Errorf("encode portfolio positions: %w", err)
	}

	query := `
		INSERT INTO portfolio_state (id, cash, positions, total_value, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			cash = EXCLUDED.cash,
			positions = EXCLUDED.positions,
			total_value = EXCLUDED.total_value,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.pool.Exec(ctx, query, state.Cash, positions, state.TotalValue, state.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert portfolio snapshot: %w", err)
	}
	return nil
}
