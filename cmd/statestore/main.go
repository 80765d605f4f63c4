// Package main runs the trade-state service: it resolves configuration
// from the environment, opens the selected storage backend and serves
// the persistence API over HTTP:
//   - POST /trades          append a trade record
//   - GET  /trades          list trades (optional ?symbol=)
//   - GET  /portfolio       latest portfolio snapshot
//   - GET  /healthz         liveness and backend connectivity
//   - GET  /metrics         Prometheus metrics
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"trade-state/internal/config"
	"trade-state/internal/logging"
	"trade-state/internal/observability"
	"trade-state/internal/statestore"
	"trade-state/internal/storage/memory"
	"trade-state/internal/storage/migrations"
	pgstore "trade-state/internal/storage/postgres"
)

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	backend := flag.String("backend", envOr("STATE_BACKEND", "firestore"),
		"Storage backend: firestore, postgres or memory")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"),
		"PostgreSQL connection string (backend=postgres)")
	listenAddr := flag.String("listen-addr", envOr("LISTEN_ADDR", ":8080"),
		"HTTP listen address")
	flag.Parse()

	// Resolving configuration also installs the logging sink; an invalid
	// trading parameter is the single fatal startup path.
	logger := logging.Component("main")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration rejected")
	}

	metrics := observability.NewMetrics("")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := buildStore(ctx, cfg, *backend, *postgresDSN, metrics)
	defer store.Close()

	srv := &http.Server{
		Addr:              *listenAddr,
		Handler:           newRouter(store, metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", *listenAddr).Str("backend", *backend).
			Bool("connected", store.IsConnected()).Msg("statestore started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown incomplete")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}
}

// buildStore opens the selected backend. Backend failures degrade to a
// disconnected store instead of aborting: offline operation is a
// supported state and callers see ErrNotConnected per operation.
func buildStore(ctx context.Context, cfg *config.Config, backend, postgresDSN string, metrics *observability.Metrics) *statestore.Store {
	logger := logging.Component("main")

	switch backend {
	case "firestore":
		return statestore.ConnectFirestore(ctx, cfg.Credentials, statestore.WithMetrics(metrics))

	case "postgres":
		if postgresDSN == "" {
			logger.Warn().Msg("no postgres dsn - starting disconnected")
			return statestore.Disconnected(statestore.WithMetrics(metrics))
		}
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			logger.Error().Err(err).Msg("postgres connection failed - starting disconnected")
			return statestore.Disconnected(statestore.WithMetrics(metrics))
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			logger.Error().Err(err).Msg("postgres migrations failed - starting disconnected")
			pool.Close()
			return statestore.Disconnected(statestore.WithMetrics(metrics))
		}
		return statestore.New(
			pgstore.NewTradeStore(pool),
			pgstore.NewPortfolioStore(pool),
			statestore.WithMetrics(metrics),
			statestore.WithCloser(pool),
		)

	case "memory":
		return statestore.New(
			memory.NewTradeStore(),
			memory.NewPortfolioStore(),
			statestore.WithMetrics(metrics),
		)

	default:
		logger.Fatal().Str("backend", backend).Msg("unknown backend")
		return nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
