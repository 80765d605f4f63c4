package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"trade-state/internal/domain"
	"trade-state/internal/storage"
)

// TradeStore implements storage.TradeStore using PostgreSQL. It is the
// relational alternative to the document backend, used where trades
// should be queryable with SQL.
type TradeStore struct {
	pool *Pool
}

// NewTradeStore creates a new PostgreSQL-backed trade store.
func NewTradeStore(pool *Pool) *TradeStore {
	return &TradeStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TradeStore = (*TradeStore)(nil)

// Append persists a new trade record.
func (s *TradeStore) Append(ctx context.Context, t *domain.TradeRecord) error {
	if t == nil {
		return storage.ErrInvalidRecord
	}

	query := `
		INSERT INTO trades (
			symbol, action, quantity, price, executed_at, created_at, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := s.pool.Exec(ctx, query,
		t.Symbol, t.Action, t.Quantity, t.Price, t.Timestamp, t.CreatedAt, t.Status,
	)
	if err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

// ListBySymbol retrieves all trades for a symbol, ordered by execution
// timestamp ASC.
func (s *TradeStore) ListBySymbol(ctx context.Context, symbol string) ([]*domain.TradeRecord, error) {
	query := `
		SELECT symbol, action, quantity, price, executed_at, created_at, status
		FROM trades
		WHERE symbol = $1
		ORDER BY executed_at ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, symbol)
	if err != nil {
		return nil, fmt.Errorf("list trades by symbol: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// All retrieves every stored trade, ordered by execution timestamp ASC.
func (s *TradeStore) All(ctx context.Context) ([]*domain.TradeRecord, error) {
	query := `
		SELECT symbol, action, quantity, price, executed_at, created_at, status
		FROM trades
		ORDER BY executed_at ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all trades: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// scanTrades scans query rows into trade records.
func scanTrades(rows pgx.Rows) ([]*domain.TradeRecord, error) {
	var trades []*domain.TradeRecord

	for rows.Next() {
		var t domain.TradeRecord
		err := rows.Scan(
			&t.Symbol, &t.Action, &t.Quantity, &t.Price, &t.Timestamp, &t.CreatedAt, &t.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan trade row: %w", err)
		}
		trades = append(trades, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trade rows: %w", err)
	}

	return trades, nil
}
