package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"trade-state/internal/domain"
	"trade-state/internal/observability"
	"trade-state/internal/statestore"
	"trade-state/internal/storage"
)

// wireTime accepts either an RFC3339 string or a Unix epoch number
// (seconds, fractional allowed), the two timestamp shapes trading
// callers send.
type wireTime struct {
	time.Time
}

func (w *wireTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return err
		}
		w.Time = t
		return nil
	}

	epoch, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	sec, frac := int64(epoch), epoch-float64(int64(epoch))
	w.Time = time.Unix(sec, int64(frac*float64(time.Second))).UTC()
	return nil
}

// tradeRequest is the POST /trades payload.
type tradeRequest struct {
	Symbol    string   `json:"symbol"`
	Action    string   `json:"action"`
	Quantity  float64  `json:"quantity"`
	Price     float64  `json:"price"`
	Timestamp wireTime `json:"timestamp"`
}

// tradeResponse mirrors a persisted trade record.
type tradeResponse struct {
	Symbol    string    `json:"symbol"`
	Action    string    `json:"action"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

// portfolioResponse mirrors the portfolio snapshot.
type portfolioResponse struct {
	Cash       float64                     `json:"cash"`
	Positions  map[string]positionResponse `json:"positions,omitempty"`
	TotalValue float64                     `json:"total_value"`
	UpdatedAt  *time.Time                  `json:"updated_at,omitempty"`
}

type positionResponse struct {
	Quantity float64 `json:"quantity"`
	AvgPrice float64 `json:"avg_price"`
}

// newRouter wires the HTTP surface over the store.
func newRouter(store *statestore.Store, metrics *observability.Metrics) http.Handler {
	h := &handlers{store: store}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /trades", h.saveTrade)
	mux.HandleFunc("GET /trades", h.listTrades)
	mux.HandleFunc("GET /portfolio", h.portfolio)
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.Handle("GET /metrics", metrics.Handler())
	return mux
}

type handlers struct {
	store *statestore.Store
}

func (h *handlers) saveTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed trade payload: "+err.Error())
		return
	}

	rec := &domain.TradeRecord{
		Symbol:    req.Symbol,
		Action:    req.Action,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Timestamp: req.Timestamp.Time,
	}

	if err := h.store.SaveTrade(r.Context(), rec); err != nil {
		writeStoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "saved"})
}

func (h *handlers) listTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.store.Trades(r.Context(), r.URL.Query().Get("symbol"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	out := make([]tradeResponse, 0, len(trades))
	for _, t := range trades {
		out = append(out, tradeResponse{
			Symbol:    t.Symbol,
			Action:    t.Action,
			Quantity:  t.Quantity,
			Price:     t.Price,
			Timestamp: t.Timestamp,
			CreatedAt: t.CreatedAt,
			Status:    t.Status,
		})
	}
	writeJSON(w, out)
}

func (h *handlers) portfolio(w http.ResponseWriter, r *http.Request) {
	state, err := h.store.PortfolioState(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	resp := portfolioResponse{
		Cash:       state.Cash,
		TotalValue: state.TotalValue,
	}
	if !state.UpdatedAt.IsZero() {
		t := state.UpdatedAt
		resp.UpdatedAt = &t
	}
	if len(state.Positions) > 0 {
		resp.Positions = make(map[string]positionResponse, len(state.Positions))
		for sym, pos := range state.Positions {
			resp.Positions[sym] = positionResponse{Quantity: pos.Quantity, AvgPrice: pos.AvgPrice}
		}
	}
	writeJSON(w, resp)
}

func (h *handlers) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"status":    "ok",
		"connected": h.store.IsConnected(),
	})
}

// writeStoreError maps the store's typed errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	var backendErr *storage.BackendError
	switch {
	case errors.Is(err, storage.ErrNotConnected):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, storage.ErrInvalidRecord):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &backendErr):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
