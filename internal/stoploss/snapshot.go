package stoploss

import (
	"github.com/wonny/realbalance/internal/external/okx"
	"github.com/wonny/realbalance/internal/instruments"
)

// PositionBook holds the normalized positions of one simulation run,
// keyed for O(1) stop-order matching. Iteration follows discovery order
// so repeated runs over the same snapshot produce identical reports.
type PositionBook struct {
	byKey map[string]*Position
	keys  []string

	// Accumulated for reporting, independent of the stop simulation
	TotalUPL float64
	Views    []PositionView
}

// BuildPositionBook normalizes raw position records into the working
// book. Zero-quantity records carry no exposure and are skipped, as are
// records without a usable average price.
func BuildPositionBook(records []okx.Position, table *instruments.Table) *PositionBook {
	book := &PositionBook{
		byKey: make(map[string]*Position, len(records)),
	}

	for _, rec := range records {
		if rec.Quantity == 0 {
			continue
		}
		if rec.AvgPrice <= 0 {
			// Malformed record, skip it and keep going
			continue
		}

		multiplier := table.Multiplier(rec.InstID)

		pos := &Position{
			InstID:     rec.InstID,
			Side:       rec.PosSide,
			Quantity:   rec.Quantity,
			Remaining:  rec.Quantity,
			AvgPrice:   rec.AvgPrice,
			Multiplier: multiplier,
		}

		key := pos.Key()
		book.byKey[key] = pos
		book.keys = append(book.keys, key)

		book.TotalUPL += rec.UnrealizedPnL
		book.Views = append(book.Views, PositionView{
			InstID:        rec.InstID,
			Side:          rec.PosSide,
			Quantity:      rec.Quantity,
			AvgPrice:      rec.AvgPrice,
			LastPrice:     rec.LastPrice,
			UnrealizedPnL: rec.UnrealizedPnL,
			Leverage:      rec.Leverage,
			Value:         rec.Quantity * multiplier * rec.LastPrice,
		})
	}

	return book
}

// Get returns the position for a composite key.
func (b *PositionBook) Get(key string) (*Position, bool) {
	pos, ok := b.byKey[key]
	return pos, ok
}

// Len returns the number of open positions in the book.
func (b *PositionBook) Len() int {
	return len(b.keys)
}

// each visits positions in discovery order.
func (b *PositionBook) each(fn func(*Position)) {
	for _, key := range b.keys {
		fn(b.byKey[key])
	}
}
