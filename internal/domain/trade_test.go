package domain

import (
	"strings"
	"testing"
	"time"
)

func validTrade() TradeRecord {
	return TradeRecord{
		Symbol:    "BTC/USDT",
		Action:    "buy",
		Quantity:  0.5,
		Price:     43000,
		Timestamp: time.Unix(1700000000, 0),
	}
}

func TestTradeRecord_ValidateComplete(t *testing.T) {
	trade := validTrade()
	if err := trade.Validate(); err != nil {
		t.Fatalf("complete record must validate: %v", err)
	}
}

func TestTradeRecord_ValidateMissingFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*TradeRecord)
	}{
		{"symbol", func(r *TradeRecord) { r.Symbol = "" }},
		{"action", func(r *TradeRecord) { r.Action = "" }},
		{"quantity", func(r *TradeRecord) { r.Quantity = 0 }},
		{"price", func(r *TradeRecord) { r.Price = 0 }},
		{"timestamp", func(r *TradeRecord) { r.Timestamp = time.Time{} }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			trade := validTrade()
			tc.mutate(&trade)

			err := trade.Validate()
			if err == nil {
				t.Fatalf("expected error for missing %s", tc.field)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error should name %q, got: %v", tc.field, err)
			}
		})
	}
}
