package storage

import (
	"context"

	"trade-state/internal/domain"
)

// TradeStore provides append-only access to trade records.
type TradeStore interface {
	// Append persists a new trade record. The record must already carry
	// its write metadata (CreatedAt, Status); backends store it as-is.
	Append(ctx context.Context, t *domain.TradeRecord) error

	// ListBySymbol retrieves all trades for a symbol, ordered by
	// execution timestamp ASC.
	ListBySymbol(ctx context.Context, symbol string) ([]*domain.TradeRecord, error)

	// All retrieves every stored trade, ordered by execution timestamp ASC.
	All(ctx context.Context) ([]*domain.TradeRecord, error)
}

// PortfolioStore provides access to the single portfolio snapshot.
type PortfolioStore interface {
	// Snapshot retrieves the latest portfolio state. Returns
	// ErrNotFound if no snapshot has ever been written.
	Snapshot(ctx context.Context) (*domain.PortfolioState, error)

	// Put replaces the portfolio snapshot.
	Put(ctx context.Context, state *domain.PortfolioState) error
}

// Closer is implemented by backends that hold external connections.
type Closer interface {
	Close() error
}
