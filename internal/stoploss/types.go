// Package stoploss simulates the sequential triggering of every pending
// stop-loss order against the account's open positions and computes the
// resulting "real balance": the account balance that remains after all
// protective orders have fired.
package stoploss

// Position sides as the exchange reports them.
const (
	SideLong  = "long"
	SideShort = "short"
)

// Position is the working record for one open contract position during
// a simulation run. Remaining starts at Quantity and is consumed as
// stop orders fire; it never goes negative.
type Position struct {
	InstID     string
	Side       string
	Quantity   float64
	Remaining  float64
	AvgPrice   float64
	Multiplier float64
}

// Key returns the composite lookup key tying stop orders to positions.
func (p *Position) Key() string {
	return p.InstID + "_" + p.Side
}

// StopOrder is a candidate stop-loss trigger tied to exactly one
// position. Size is only meaningful when HasSize is set; FullClose takes
// precedence over any declared size.
type StopOrder struct {
	InstID       string
	PosKey       string
	Kind         string // conditional, oco, trigger
	Side         string
	TriggerPrice float64
	Size         float64
	HasSize      bool
	FullClose    bool
}

// PositionView is the reporting shape for one open position. Field names
// are the wire contract consumed by the dashboard.
type PositionView struct {
	InstID        string  `json:"inst_id"`
	Side          string  `json:"side"`
	Quantity      float64 `json:"qty"`
	AvgPrice      float64 `json:"avg_px"`
	LastPrice     float64 `json:"last_px"`
	UnrealizedPnL float64 `json:"upl"`
	Leverage      string  `json:"lever"`
	Value         float64 `json:"value"`
}

// StopFill is the per-order simulation result, in trigger order.
// Loss is positive for a real loss; a stop above a long entry nets in
// as a negative value.
type StopFill struct {
	InstID       string  `json:"inst_id"`
	Kind         string  `json:"type"`
	Quantity     float64 `json:"qty"`
	FullClose    bool    `json:"is_full"`
	AvgPrice     float64 `json:"avg_px"`
	TriggerPrice float64 `json:"sl_price"`
	Loss         float64 `json:"loss"`
	DistancePct  float64 `json:"distance_pct"`
}

// Report is the complete real-balance report. The json field names are
// the wire contract between the calculator and the dashboard.
type Report struct {
	AccountBalance     float64        `json:"account_balance"`
	TotalEquity        float64        `json:"total_equity"`
	AccountUPL         float64        `json:"account_upl"`
	Positions          []PositionView `json:"positions"`
	StopOrders         []StopFill     `json:"stop_orders"`
	TotalPotentialLoss float64        `json:"total_potential_loss"`
	RealBalance        float64        `json:"real_balance"`
}
