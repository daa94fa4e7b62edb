package stoploss

import (
	"math"
	"sort"
)

// Simulate walks every position's stop orders in trigger order and
// consumes the position quantity sequentially, producing the itemized
// fill list and the aggregate potential loss.
//
// Trigger order follows the side's adverse price direction: a long
// position is unwound by falling price, so higher triggers fire first
// (descending); a short position by rising price, so lower triggers
// fire first (ascending). Equal trigger prices keep discovery order
// (stable sort).
func Simulate(book *PositionBook, stops []StopOrder) ([]StopFill, float64) {
	byKey := make(map[string][]StopOrder, book.Len())
	for _, stop := range stops {
		byKey[stop.PosKey] = append(byKey[stop.PosKey], stop)
	}

	fills := make([]StopFill, 0, len(stops))
	totalLoss := 0.0

	book.each(func(pos *Position) {
		orders := byKey[pos.Key()]
		if len(orders) == 0 {
			return
		}

		if pos.Side == SideLong {
			sort.SliceStable(orders, func(i, j int) bool {
				return orders[i].TriggerPrice > orders[j].TriggerPrice
			})
		} else {
			sort.SliceStable(orders, func(i, j int) bool {
				return orders[i].TriggerPrice < orders[j].TriggerPrice
			})
		}

		for _, ord := range orders {
			if pos.Remaining <= 0 {
				break
			}

			// A full close consumes whatever remains, not its own
			// declared size.
			var qty float64
			if ord.FullClose {
				qty = pos.Remaining
			} else {
				qty = math.Min(ord.Size, pos.Remaining)
			}

			pos.Remaining -= qty

			loss := realizedLoss(pos, ord.TriggerPrice, qty)
			totalLoss += loss

			fills = append(fills, StopFill{
				InstID:       ord.InstID,
				Kind:         ord.Kind,
				Quantity:     qty,
				FullClose:    ord.FullClose,
				AvgPrice:     pos.AvgPrice,
				TriggerPrice: ord.TriggerPrice,
				Loss:         loss,
				DistancePct:  distancePct(pos.AvgPrice, ord.TriggerPrice),
			})
		}
	})

	return fills, totalLoss
}

// realizedLoss computes the loss realized by closing qty contracts at
// the trigger price. Positive means loss; a stop on the profitable side
// of the entry nets in as a gain.
func realizedLoss(pos *Position, triggerPrice, qty float64) float64 {
	if pos.Side == SideLong {
		return (pos.AvgPrice - triggerPrice) * qty * pos.Multiplier
	}
	return (triggerPrice - pos.AvgPrice) * qty * pos.Multiplier
}

// distancePct is the absolute distance between trigger and entry price
// as a percentage of the entry price.
func distancePct(avgPrice, triggerPrice float64) float64 {
	return math.Abs(triggerPrice-avgPrice) / avgPrice * 100
}
