package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"trade-state/internal/domain"
	"trade-state/internal/storage"
)

func TestPortfolioStore_SnapshotNotFound(t *testing.T) {
	store := NewPortfolioStore()

	_, err := store.Snapshot(context.Background())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPortfolioStore_PutAndSnapshot(t *testing.T) {
	store := NewPortfolioStore()
	ctx := context.Background()

	state := &domain.PortfolioState{
		Cash: 10000,
		Positions: map[string]domain.Position{
			"BTC/USDT": {Quantity: 0.5, AvgPrice: 43000},
		},
		TotalValue: 31500,
		UpdatedAt:  time.Unix(1700000000, 0),
	}

	if err := store.Put(ctx, state); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if got.Cash != 10000 {
		t.Errorf("Cash mismatch: got %f", got.Cash)
	}
	if got.Positions["BTC/USDT"].Quantity != 0.5 {
		t.Errorf("Position mismatch: got %+v", got.Positions["BTC/USDT"])
	}
}

func TestPortfolioStore_PutReplacesSnapshot(t *testing.T) {
	store := NewPortfolioStore()
	ctx := context.Background()

	first := &domain.PortfolioState{Cash: 100, TotalValue: 100, UpdatedAt: time.Unix(1700000000, 0)}
	second := &domain.PortfolioState{Cash: 200, TotalValue: 200, UpdatedAt: time.Unix(1700000100, 0)}

	if err := store.Put(ctx, first); err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	if err := store.Put(ctx, second); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	got, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if got.Cash != 200 {
		t.Errorf("expected replaced snapshot, got cash %f", got.Cash)
	}
}

func TestPortfolioStore_SnapshotReturnsCopy(t *testing.T) {
	store := NewPortfolioStore()
	ctx := context.Background()

	state := &domain.PortfolioState{
		Cash:      100,
		Positions: map[string]domain.Position{"BTC/USDT": {Quantity: 1, AvgPrice: 43000}},
	}
	if err := store.Put(ctx, state); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, _ := store.Snapshot(ctx)
	got.Positions["BTC/USDT"] = domain.Position{Quantity: 99}

	fresh, _ := store.Snapshot(ctx)
	if fresh.Positions["BTC/USDT"].Quantity != 1 {
		t.Error("snapshot shares positions map with caller")
	}
}

func TestPortfolioStore_NilState(t *testing.T) {
	store := NewPortfolioStore()

	err := store.Put(context.Background(), nil)
	if !errors.Is(err, storage.ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}
}
