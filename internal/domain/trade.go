package domain

import (
	"fmt"
	"time"
)

// TradeRecord represents a single executed trade as submitted by the
// trading layer. Symbol, Action, Quantity, Price and Timestamp are
// required on input; CreatedAt and Status are filled in by the store
// at write time, never by the caller.
type TradeRecord struct {
	Symbol    string    // trading pair, e.g. "BTC/USDT"
	Action    string    // "buy" | "sell"
	Quantity  float64   // base asset amount
	Price     float64   // execution price
	Timestamp time.Time // execution time reported by the exchange

	// Write metadata, set by the store.
	CreatedAt time.Time // UTC time the record was persisted
	Status    string    // always StatusCompleted once persisted
}

// Trade status constants.
const (
	StatusCompleted = "completed"
)

// requiredFields lists the input fields a record must carry. Kept in
// one place so the validation error can name the full requirement.
var requiredFields = []string{"symbol", "action", "quantity", "price", "timestamp"}

// Validate checks that all required input fields are present.
// It returns an error naming the first missing field.
func (t *TradeRecord) Validate() error {
	missing := ""
	switch {
	case t.Symbol == "":
		missing = "symbol"
	case t.Action == "":
		missing = "action"
	case t.Quantity == 0:
		missing = "quantity"
	case t.Price == 0:
		missing = "price"
	case t.Timestamp.IsZero():
		missing = "timestamp"
	}
	if missing != "" {
		return fmt.Errorf("missing required trade field %q (required: %v)", missing, requiredFields)
	}
	return nil
}
