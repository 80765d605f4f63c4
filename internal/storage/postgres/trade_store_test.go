package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trade-state/internal/domain"
	"trade-state/internal/storage/postgres"
)

func TestTradeStore_AppendAndList(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewTradeStore(pool)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	trades := []*domain.TradeRecord{
		{Symbol: "BTC/USDT", Action: "sell", Quantity: 0.25, Price: 43500, Timestamp: base.Add(2 * time.Minute), CreatedAt: base.Add(3 * time.Minute), Status: domain.StatusCompleted},
		{Symbol: "ETH/USDT", Action: "buy", Quantity: 2, Price: 2300, Timestamp: base.Add(time.Minute), CreatedAt: base.Add(2 * time.Minute), Status: domain.StatusCompleted},
		{Symbol: "BTC/USDT", Action: "buy", Quantity: 0.5, Price: 43000, Timestamp: base, CreatedAt: base.Add(time.Minute), Status: domain.StatusCompleted},
	}
	for _, trade := range trades {
		require.NoError(t, store.Append(ctx, trade))
	}

	btc, err := store.ListBySymbol(ctx, "BTC/USDT")
	require.NoError(t, err)
	require.Len(t, btc, 2)

	// Ordered by execution timestamp ASC.
	require.Equal(t, "buy", btc[0].Action)
	require.Equal(t, "sell", btc[1].Action)
	require.True(t, btc[0].Timestamp.Before(btc[1].Timestamp))

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestTradeStore_AppendPreservesFields(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewTradeStore(pool)
	ctx := context.Background()

	trade := &domain.TradeRecord{
		Symbol:    "SOL/USDT",
		Action:    "buy",
		Quantity:  10,
		Price:     145.5,
		Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 1, 0, time.UTC),
		Status:    domain.StatusCompleted,
	}
	require.NoError(t, store.Append(ctx, trade))

	got, err := store.ListBySymbol(ctx, "SOL/USDT")
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.Equal(t, trade.Symbol, got[0].Symbol)
	require.Equal(t, trade.Action, got[0].Action)
	require.Equal(t, trade.Quantity, got[0].Quantity)
	require.Equal(t, trade.Price, got[0].Price)
	require.True(t, trade.Timestamp.Equal(got[0].Timestamp))
	require.True(t, trade.CreatedAt.Equal(got[0].CreatedAt))
	require.Equal(t, domain.StatusCompleted, got[0].Status)
}

func TestTradeStore_ListEmptySymbol(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewTradeStore(pool)

	got, err := store.ListBySymbol(context.Background(), "NO/SUCH")
	require.NoError(t, err)
	require.Empty(t, got)
}
