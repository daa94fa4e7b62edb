package okx

import (
	"context"
	"fmt"
	"net/url"
)

// GetPendingAlgoOrders returns the pending algo orders of one order type
// for perpetual swaps. Stop-loss extraction happens downstream: an order
// without slTriggerPx is still returned here.
func (c *Client) GetPendingAlgoOrders(ctx context.Context, ordType string) ([]AlgoOrder, error) {
	path := fmt.Sprintf("/api/v5/trade/orders-algo-pending?ordType=%s&instType=SWAP",
		url.QueryEscape(ordType))

	var raw []rawAlgoOrder
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, fmt.Errorf("algo orders request (%s): %w", ordType, err)
	}

	orders := make([]AlgoOrder, 0, len(raw))
	for _, r := range raw {
		orders = append(orders, AlgoOrder{
			AlgoID:         r.AlgoID,
			InstID:         r.InstID,
			PosSide:        r.PosSide,
			OrdType:        r.OrdType,
			SLTriggerPrice: r.SlTriggerPx,
			Size:           r.Sz,
			CloseFraction:  r.CloseFraction,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"ord_type": ordType,
		"count":    len(orders),
	}).Debug("Pending algo orders fetched")

	return orders, nil
}
