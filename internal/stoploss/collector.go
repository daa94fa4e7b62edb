package stoploss

import (
	"strconv"

	"github.com/wonny/realbalance/internal/external/okx"
)

// CollectStopOrders normalizes pending algo orders into candidate
// stop-loss triggers. Orders without a stop trigger price are not
// stop-losses; orders referencing no open position cannot be simulated.
// Both are dropped. Discovery order is preserved: it is the tie-break
// when two stops on one position share a trigger price.
func CollectStopOrders(orders []okx.AlgoOrder, book *PositionBook) []StopOrder {
	stops := make([]StopOrder, 0, len(orders))

	for _, ord := range orders {
		if ord.SLTriggerPrice == "" {
			continue
		}

		triggerPrice, err := strconv.ParseFloat(ord.SLTriggerPrice, 64)
		if err != nil || triggerPrice <= 0 {
			continue
		}

		// The exchange omits posSide in net mode; default to long
		posSide := ord.PosSide
		if posSide == "" {
			posSide = SideLong
		}

		posKey := ord.InstID + "_" + posSide
		if _, ok := book.Get(posKey); !ok {
			continue
		}

		stop := StopOrder{
			InstID:       ord.InstID,
			PosKey:       posKey,
			Kind:         ord.OrdType,
			Side:         posSide,
			TriggerPrice: triggerPrice,
			FullClose:    ord.FullClose(),
		}

		if ord.Size != "" {
			if size, err := strconv.ParseFloat(ord.Size, 64); err == nil && size > 0 {
				stop.Size = size
				stop.HasSize = true
			}
		}

		// Full close takes precedence over any declared size; an order
		// with neither is invalid and cannot be simulated.
		if !stop.FullClose && !stop.HasSize {
			continue
		}

		stops = append(stops, stop)
	}

	return stops
}
