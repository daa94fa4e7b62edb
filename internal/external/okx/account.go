package okx

import (
	"context"
	"fmt"
)

// GetAccountBalance returns total equity and the unrealized PnL summed
// across all currency details. The exchange reports totalEq including
// unrealized PnL; the caller subtracts upl to get the settled balance.
func (c *Client) GetAccountBalance(ctx context.Context) (*AccountBalance, error) {
	var raw []rawBalance
	if err := c.get(ctx, "/api/v5/account/balance", &raw); err != nil {
		return nil, fmt.Errorf("balance request: %w", err)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("empty balance response")
	}

	balance := &AccountBalance{
		TotalEquity: parseFloatSafe(raw[0].TotalEq),
	}
	for _, detail := range raw[0].Details {
		balance.UnrealizedPnL += parseFloatSafe(detail.Upl)
	}

	c.logger.WithFields(map[string]interface{}{
		"total_equity":   balance.TotalEquity,
		"unrealized_pnl": balance.UnrealizedPnL,
	}).Debug("Account balance fetched")

	return balance, nil
}

// GetPositions returns all open perpetual swap positions. Records are
// parsed as-is; zero-quantity filtering is the simulator's concern.
func (c *Client) GetPositions(ctx context.Context) ([]Position, error) {
	var raw []rawPosition
	if err := c.get(ctx, "/api/v5/account/positions?instType=SWAP", &raw); err != nil {
		return nil, fmt.Errorf("positions request: %w", err)
	}

	positions := make([]Position, 0, len(raw))
	for _, r := range raw {
		positions = append(positions, Position{
			InstID:        r.InstID,
			PosSide:       r.PosSide,
			Quantity:      parseFloatSafe(r.Pos),
			AvgPrice:      parseFloatSafe(r.AvgPx),
			LastPrice:     parseFloatSafe(r.Last),
			UnrealizedPnL: parseFloatSafe(r.Upl),
			Leverage:      r.Lever,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"positions_count": len(positions),
	}).Debug("Positions fetched")

	return positions, nil
}
