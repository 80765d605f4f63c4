package firestore

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"trade-state/internal/domain"
	"trade-state/internal/storage"
)

// The portfolio snapshot lives in a single well-known document.
const (
	portfolioCollection = "portfolio"
	portfolioDocID      = "state"
)

// positionDoc is the wire shape of one holding inside the snapshot.
type positionDoc struct {
	Quantity float64 `firestore:"quantity"`
	AvgPrice float64 `firestore:"avg_price"`
}

// portfolioDoc is the wire shape of the snapshot document.
type portfolioDoc struct {
	Cash       float64                `firestore:"cash"`
	Positions  map[string]positionDoc `firestore:"positions"`
	TotalValue float64                `firestore:"total_value"`
	UpdatedAt  time.Time              `firestore:"updated_at"`
}

// PortfolioStore implements storage.PortfolioStore on Firestore.
type PortfolioStore struct {
	client *Client
}

// NewPortfolioStore creates a new Firestore-backed portfolio store.
func NewPortfolioStore(client *Client) *PortfolioStore {
	return &PortfolioStore{client: client}
}

// Compile-time interface check.
var _ storage.PortfolioStore = (*PortfolioStore)(nil)

// Snapshot retrieves the latest portfolio state. Returns ErrNotFound
// if the snapshot document does not exist.
func (s *PortfolioStore) Snapshot(ctx context.Context) (*domain.PortfolioState, error) {
	snap, err := s.client.conn.Collection(portfolioCollection).Doc(portfolioDocID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get portfolio document: %w", err)
	}

	var doc portfolioDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode portfolio document: %w", err)
	}

	state := &domain.PortfolioState{
		Cash:       doc.Cash,
		TotalValue: doc.TotalValue,
		UpdatedAt:  doc.UpdatedAt,
	}
	if len(doc.Positions) > 0 {
		state.Positions = make(map[string]domain.Position, len(doc.Positions))
		for sym, pos := range doc.Positions {
			state.Positions[sym] = domain.Position{Quantity: pos.Quantity, AvgPrice: pos.AvgPrice}
		}
	}
	return state, nil
}

// Put replaces the portfolio snapshot document.
func (s *PortfolioStore) Put(ctx context.Context, state *domain.PortfolioState) error {
	if state == nil {
		return storage.ErrInvalidRecord
	}

	doc := portfolioDoc{
		Cash:       state.Cash,
		TotalValue: state.TotalValue,
		UpdatedAt:  state.UpdatedAt,
	}
	if len(state.Positions) > 0 {
		doc.Positions = make(map[string]positionDoc, len(state.Positions))
		for sym, pos := range state.Positions {
			doc.Positions[sym] = positionDoc{Quantity: pos.Quantity, AvgPrice: pos.AvgPrice}
		}
	}

	_, err := s.client.conn.Collection(portfolioCollection).Doc(portfolioDocID).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("set portfolio document: %w", err)
	}
	return nil
}
