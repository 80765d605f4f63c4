// Package statestore exposes durable trade persistence and portfolio
// snapshot reads over any storage backend, isolating callers from
// backend-specific error types. Every operation degrades to a typed
// error plus a log line instead of panicking or leaking SDK errors, so
// a backend outage never crashes a caller.
package statestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"trade-state/internal/config"
	"trade-state/internal/domain"
	"trade-state/internal/logging"
	"trade-state/internal/observability"
	"trade-state/internal/storage"
	"trade-state/internal/storage/firestore"
)

// Store is the persistence facade. A Store without backend stores is
// valid: it is the degraded/offline state, and every operation on it
// reports storage.ErrNotConnected.
type Store struct {
	trades    storage.TradeStore
	portfolio storage.PortfolioStore
	closer    storage.Closer

	logger  zerolog.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithMetrics attaches Prometheus metrics to the store.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithCloser registers the backend connection to release on Close.
func WithCloser(c storage.Closer) Option {
	return func(s *Store) { s.closer = c }
}

// New builds a connected Store over the given backend stores.
func New(trades storage.TradeStore, portfolio storage.PortfolioStore, opts ...Option) *Store {
	s := &Store{
		trades:    trades,
		portfolio: portfolio,
		logger:    logging.Component("statestore"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setConnectedGauge()
	return s
}

// Disconnected builds a Store in the degraded/offline state.
func Disconnected(opts ...Option) *Store {
	return New(nil, nil, opts...)
}

// ConnectFirestore builds a Store backed by the document database.
// Construction never fails: zero credentials or any backend error
// yield a disconnected store and a log line, since offline operation
// is a supported state.
func ConnectFirestore(ctx context.Context, creds config.Credentials, opts ...Option) *Store {
	logger := logging.Component("statestore")

	if creds.IsZero() {
		logger.Warn().Msg("no credentials - starting disconnected")
		return Disconnected(opts...)
	}

	client, err := firestore.Connect(ctx, creds)
	if err != nil {
		logger.Error().Err(err).Msg("backend connection failed - starting disconnected")
		return Disconnected(opts...)
	}

	logger.Info().Str("project", creds.ProjectID).Msg("backend connected")
	opts = append(opts, WithCloser(client))
	return New(firestore.NewTradeStore(client), firestore.NewPortfolioStore(client), opts...)
}

// IsConnected reports whether a live backend connection exists.
func (s *Store) IsConnected() bool {
	return s.trades != nil && s.portfolio != nil
}

// SaveTrade persists a trade record. The caller's record is never
// mutated: a local copy is augmented with the write time and the
// completed status before it is handed to the backend.
//
// Failures are reported as storage.ErrNotConnected,
// storage.ErrInvalidRecord (wrapped, naming the missing field) or
// *storage.BackendError; no backend SDK error crosses this boundary.
func (s *Store) SaveTrade(ctx context.Context, rec *domain.TradeRecord) error {
	if !s.IsConnected() {
		s.logger.Warn().Msg("backend not connected - trade not saved")
		s.countSaveFailure(observability.ReasonNotConnected)
		return storage.ErrNotConnected
	}

	if rec == nil {
		s.logger.Error().Msg("nil trade record rejected")
		s.countSaveFailure(observability.ReasonInvalidRecord)
		return storage.ErrInvalidRecord
	}
	if err := rec.Validate(); err != nil {
		s.logger.Error().Err(err).Msg("trade record rejected")
		s.countSaveFailure(observability.ReasonInvalidRecord)
		return fmt.Errorf("%w: %v", storage.ErrInvalidRecord, err)
	}

	cp := *rec
	cp.CreatedAt = s.now().UTC()
	cp.Status = domain.StatusCompleted

	if err := s.trades.Append(ctx, &cp); err != nil {
		backendErr := &storage.BackendError{Op: "save trade", Err: err}
		s.logger.Error().Err(backendErr).Msg("backend rejected trade write")
		s.countSaveFailure(observability.ReasonBackend)
		return backendErr
	}

	s.logger.Info().Str("symbol", cp.Symbol).Str("action", cp.Action).Msg("trade saved")
	if s.metrics != nil {
		s.metrics.TradesSaved.Inc()
	}
	return nil
}

// PortfolioState retrieves the latest known portfolio snapshot.
// Ordinary absence (no snapshot written yet) yields a zero-value
// snapshot and no error; only disconnection and backend failures are
// reported as errors.
func (s *Store) PortfolioState(ctx context.Context) (*domain.PortfolioState, error) {
	if !s.IsConnected() {
		s.logger.Warn().Msg("backend not connected - portfolio state unavailable")
		s.countPortfolioFailure(observability.ReasonNotConnected)
		return nil, storage.ErrNotConnected
	}

	state, err := s.portfolio.Snapshot(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug().Msg("no portfolio snapshot recorded yet")
		if s.metrics != nil {
			s.metrics.PortfolioReads.Inc()
		}
		return &domain.PortfolioState{}, nil
	}
	if err != nil {
		backendErr := &storage.BackendError{Op: "get portfolio state", Err: err}
		s.logger.Error().Err(backendErr).Msg("backend rejected portfolio read")
		s.countPortfolioFailure(observability.ReasonBackend)
		return nil, backendErr
	}

	if s.metrics != nil {
		s.metrics.PortfolioReads.Inc()
	}
	return state, nil
}

// Trades retrieves stored trades, all of them or only those for the
// given symbol, with the same failure contract as PortfolioState.
func (s *Store) Trades(ctx context.Context, symbol string) ([]*domain.TradeRecord, error) {
	if !s.IsConnected() {
		s.logger.Warn().Msg("backend not connected - trades unavailable")
		return nil, storage.ErrNotConnected
	}

	var (
		trades []*domain.TradeRecord
		err    error
	)
	if symbol == "" {
		trades, err = s.trades.All(ctx)
	} else {
		trades, err = s.trades.ListBySymbol(ctx, symbol)
	}
	if err != nil {
		backendErr := &storage.BackendError{Op: "list trades", Err: err}
		s.logger.Error().Err(backendErr).Msg("backend rejected trade read")
		return nil, backendErr
	}
	return trades, nil
}

// Close releases the backend connection, if any.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *Store) setConnectedGauge() {
	if s.metrics == nil {
		return
	}
	if s.IsConnected() {
		s.metrics.BackendConnected.Set(1)
	} else {
		s.metrics.BackendConnected.Set(0)
	}
}

func (s *Store) countSaveFailure(reason string) {
	if s.metrics != nil {
		s.metrics.SaveFailures.WithLabelValues(reason).Inc()
	}
}

func (s *Store) countPortfolioFailure(reason string) {
	if s.metrics != nil {
		s.metrics.PortfolioFailures.WithLabelValues(reason).Inc()
	}
}
