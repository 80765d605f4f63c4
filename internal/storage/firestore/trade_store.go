package firestore

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"trade-state/internal/domain"
	"trade-state/internal/storage"
)

// tradesCollection is the fixed collection trade records are appended to.
const tradesCollection = "trades"

// tradeDoc is the wire shape of a trade document.
type tradeDoc struct {
	Symbol    string    `firestore:"symbol"`
	Action    string    `firestore:"action"`
	Quantity  float64   `firestore:"quantity"`
	Price     float64   `firestore:"price"`
	Timestamp time.Time `firestore:"timestamp"`
	CreatedAt time.Time `firestore:"created_at"`
	Status    string    `firestore:"status"`
}

// TradeStore implements storage.TradeStore on Firestore.
type TradeStore struct {
	client *Client
}

// NewTradeStore creates a new Firestore-backed trade store.
func NewTradeStore(client *Client) *TradeStore {
	return &TradeStore{client: client}
}

// Compile-time interface check.
var _ storage.TradeStore = (*TradeStore)(nil)

// Append adds the record as a new auto-ID document in the trades
// collection.
func (s *TradeStore) Append(ctx context.Context, t *domain.TradeRecord) error {
	if t == nil {
		return storage.ErrInvalidRecord
	}

	_, _, err := s.client.conn.Collection(tradesCollection).Add(ctx, toTradeDoc(t))
	if err != nil {
		return fmt.Errorf("append trade document: %w", err)
	}
	return nil
}

// ListBySymbol retrieves all trades for a symbol, ordered by execution
// timestamp ASC.
func (s *TradeStore) ListBySymbol(ctx context.Context, symbol string) ([]*domain.TradeRecord, error) {
	query := s.client.conn.Collection(tradesCollection).
		Where("symbol", "==", symbol).
		OrderBy("timestamp", fs.Asc)

	return collectTrades(query.Documents(ctx))
}

// All retrieves every stored trade, ordered by execution timestamp ASC.
func (s *TradeStore) All(ctx context.Context) ([]*domain.TradeRecord, error) {
	query := s.client.conn.Collection(tradesCollection).
		OrderBy("timestamp", fs.Asc)

	return collectTrades(query.Documents(ctx))
}

func collectTrades(docs *fs.DocumentIterator) ([]*domain.TradeRecord, error) {
	defer docs.Stop()

	var trades []*domain.TradeRecord
	for {
		snap, err := docs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate trade documents: %w", err)
		}

		var doc tradeDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode trade document %s: %w", snap.Ref.ID, err)
		}
		trades = append(trades, fromTradeDoc(doc))
	}

	return trades, nil
}

func toTradeDoc(t *domain.TradeRecord) tradeDoc {
	return tradeDoc{
		Symbol:    t.Symbol,
		Action:    t.Action,
		Quantity:  t.Quantity,
		Price:     t.Price,
		Timestamp: t.Timestamp,
		CreatedAt: t.CreatedAt,
		Status:    t.Status,
	}
}

func fromTradeDoc(doc tradeDoc) *domain.TradeRecord {
	return &domain.TradeRecord{
		Symbol:    doc.Symbol,
		Action:    doc.Action,
		Quantity:  doc.Quantity,
		Price:     doc.Price,
		Timestamp: doc.Timestamp,
		CreatedAt: doc.CreatedAt,
		Status:    doc.Status,
	}
}
