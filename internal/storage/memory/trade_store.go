package memory

import (
	"context"
	"sort"
	"sync"

	"trade-state/internal/domain"
	"trade-state/internal/storage"
)

// TradeStore is an in-memory implementation of storage.TradeStore,
// used by tests and by offline runs. Records are auto-keyed on append,
// mirroring the document backend's behavior.
type TradeStore struct {
	mu     sync.RWMutex
	trades []*domain.TradeRecord
}

// NewTradeStore creates a new in-memory trade store.
func NewTradeStore() *TradeStore {
	return &TradeStore{}
}

// Append persists a new trade record.
func (s *TradeStore) Append(_ context.Context, t *domain.TradeRecord) error {
	if t == nil {
		return storage.ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *t
	s.trades = append(s.trades, &cp)
	return nil
}

// ListBySymbol retrieves all trades for a symbol, ordered by execution
// timestamp ASC.
func (s *TradeStore) ListBySymbol(_ context.Context, symbol string) ([]*domain.TradeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.TradeRecord
	for _, t := range s.trades {
		if t.Symbol == symbol {
			cp := *t
			result = append(result, &cp)
		}
	}

	sortByTimestamp(result)
	return result, nil
}

// All retrieves every stored trade, ordered by execution timestamp ASC.
func (s *TradeStore) All(_ context.Context) ([]*domain.TradeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.TradeRecord, 0, len(s.trades))
	for _, t := range s.trades {
		cp := *t
		result = append(result, &cp)
	}

	sortByTimestamp(result)
	return result, nil
}

func sortByTimestamp(trades []*domain.TradeRecord) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Timestamp.Before(trades[j].Timestamp)
	})
}

var _ storage.TradeStore = (*TradeStore)(nil)
