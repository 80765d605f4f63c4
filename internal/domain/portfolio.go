package domain

import "time"

// Position is a single open holding inside the portfolio snapshot.
type Position struct {
	Quantity float64 // signed base asset amount
	AvgPrice float64 // volume-weighted average entry price
}

// PortfolioState is the latest known portfolio snapshot. A zero value
// means "no snapshot recorded yet" and is a valid state: the store
// returns it for ordinary absence instead of an error.
type PortfolioState struct {
	Cash       float64             // free quote currency
	Positions  map[string]Position // keyed by symbol
	TotalValue float64             // cash + marked value of positions
	UpdatedAt  time.Time           // time the snapshot was written
}

// IsZero reports whether the snapshot carries no recorded state.
func (p *PortfolioState) IsZero() bool {
	return p.Cash == 0 && len(p.Positions) == 0 && p.TotalValue == 0 && p.UpdatedAt.IsZero()
}

// Clone returns a deep copy so callers can hold a snapshot without
// sharing the positions map with the store.
func (p *PortfolioState) Clone() *PortfolioState {
	out := *p
	if p.Positions != nil {
		out.Positions = make(map[string]Position, len(p.Positions))
		for sym, pos := range p.Positions {
			out.Positions[sym] = pos
		}
	}
	return &out
}
