package stoploss

import (
	"context"
	"fmt"

	"github.com/wonny/realbalance/internal/external/okx"
	"github.com/wonny/realbalance/internal/instruments"
	"github.com/wonny/realbalance/pkg/logger"
)

// MarketData is the feed surface the calculator needs from the
// exchange. *okx.Client satisfies it.
type MarketData interface {
	GetAccountBalance(ctx context.Context) (*okx.AccountBalance, error)
	GetPositions(ctx context.Context) ([]okx.Position, error)
	GetPendingAlgoOrders(ctx context.Context, ordType string) ([]okx.AlgoOrder, error)
}

// Calculator produces real-balance reports from fresh exchange
// snapshots. It holds no state across runs; every compute builds and
// discards its own position book.
type Calculator struct {
	data   MarketData
	table  *instruments.Table
	logger *logger.Logger
}

// NewCalculator creates a calculator backed by the given market data feed.
func NewCalculator(data MarketData, table *instruments.Table, log *logger.Logger) *Calculator {
	return &Calculator{
		data:   data,
		table:  table,
		logger: log,
	}
}

// ComputeRealBalance fetches the account snapshot, open positions and
// pending stop orders, simulates every stop triggering in sequence, and
// returns the full report.
//
// Failure policy: account and position fetches are the foundation of
// the report, so their errors surface to the caller rather than being
// masked as a zero balance. A single failed algo-order feed degrades to
// empty with a warning, matching per-feed behavior of the exchange.
func (c *Calculator) ComputeRealBalance(ctx context.Context) (*Report, error) {
	balance, err := c.data.GetAccountBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch account balance: %w", err)
	}

	records, err := c.data.GetPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch positions: %w", err)
	}

	book := BuildPositionBook(records, c.table)

	var candidates []okx.AlgoOrder
	for _, ordType := range okx.StopOrderTypes {
		orders, err := c.data.GetPendingAlgoOrders(ctx, ordType)
		if err != nil {
			c.logger.WithError(err).WithField("ord_type", ordType).
				Warn("Pending order feed unavailable, treating as empty")
			continue
		}
		candidates = append(candidates, orders...)
	}

	stops := CollectStopOrders(candidates, book)
	fills, totalLoss := Simulate(book, stops)

	accountBalance := balance.Balance()

	report := &Report{
		AccountBalance:     accountBalance,
		TotalEquity:        balance.TotalEquity,
		AccountUPL:         balance.UnrealizedPnL,
		Positions:          book.Views,
		StopOrders:         fills,
		TotalPotentialLoss: totalLoss,
		RealBalance:        accountBalance - totalLoss,
	}

	c.logger.WithFields(map[string]interface{}{
		"positions":            book.Len(),
		"stop_orders":          len(fills),
		"total_potential_loss": totalLoss,
		"real_balance":         report.RealBalance,
	}).Info("Real balance computed")

	return report, nil
}
