package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trade-state/internal/domain"
	"trade-state/internal/storage"
	"trade-state/internal/storage/postgres"
)

func TestPortfolioStore_SnapshotNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewPortfolioStore(pool)

	_, err := store.Snapshot(context.Background())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPortfolioStore_PutAndSnapshot(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewPortfolioStore(pool)
	ctx := context.Background()

	state := &domain.PortfolioState{
		Cash: 10000,
		Positions: map[string]domain.Position{
			"BTC/USDT": {Quantity: 0.5, AvgPrice: 43000},
			"ETH/USDT": {Quantity: 2, AvgPrice: 2300},
		},
		TotalValue: 36100,
		UpdatedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(ctx, state))

	got, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, state.Cash, got.Cash)
	require.Equal(t, state.TotalValue, got.TotalValue)
	require.Equal(t, state.Positions, got.Positions)
	require.True(t, state.UpdatedAt.Equal(got.UpdatedAt))
}

func TestPortfolioStore_PutReplacesSnapshot(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewPortfolioStore(pool)
	ctx := context.Background()

	first := &domain.PortfolioState{Cash: 100, TotalValue: 100, UpdatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, store.Put(ctx, first))

	second := &domain.PortfolioState{
		Cash:       250,
		Positions:  map[string]domain.Position{"BTC/USDT": {Quantity: 1, AvgPrice: 43000}},
		TotalValue: 43250,
		UpdatedAt:  time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(ctx, second))

	got, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 250.0, got.Cash)
	require.Len(t, got.Positions, 1)
}
