package okx

// ============================================================
// Account & Position Types
// ============================================================

// AccountBalance is the account snapshot used by the real-balance
// calculation. UnrealizedPnL is the sum of per-currency upl values.
type AccountBalance struct {
	TotalEquity   float64 `json:"total_equity"`
	UnrealizedPnL float64 `json:"unrealized_pnl"`
}

// Balance derives the account balance excluding unrealized PnL.
func (b *AccountBalance) Balance() float64 {
	return b.TotalEquity - b.UnrealizedPnL
}

// Position represents an open perpetual swap position.
type Position struct {
	InstID        string  `json:"inst_id"`
	PosSide       string  `json:"pos_side"` // long, short
	Quantity      float64 `json:"qty"`      // contracts, 0 means not open
	AvgPrice      float64 `json:"avg_px"`
	LastPrice     float64 `json:"last_px"`
	UnrealizedPnL float64 `json:"upl"`
	Leverage      string  `json:"lever"`
}

// ============================================================
// Algo Order Types
// ============================================================

// Algo order types the exchange accepts for stop-style orders.
const (
	OrdTypeConditional = "conditional"
	OrdTypeOCO         = "oco"
	OrdTypeTrigger     = "trigger"
)

// StopOrderTypes lists every pending-order feed that can carry a
// stop-loss trigger, in fetch order.
var StopOrderTypes = []string{OrdTypeConditional, OrdTypeOCO, OrdTypeTrigger}

// AlgoOrder represents a pending algo order. Numeric fields stay as the
// raw strings the exchange sent: an empty SLTriggerPrice means the order
// carries no stop-loss leg, and Size is optional when CloseFraction
// requests a full close.
type AlgoOrder struct {
	AlgoID         string `json:"algo_id"`
	InstID         string `json:"inst_id"`
	PosSide        string `json:"pos_side"`
	OrdType        string `json:"ord_type"`
	SLTriggerPrice string `json:"sl_trigger_px"`
	Size           string `json:"sz"`
	CloseFraction  string `json:"close_fraction"`
}

// FullClose reports whether the order is defined to close the entire
// remaining position at trigger time.
func (o *AlgoOrder) FullClose() bool {
	return o.CloseFraction == "1"
}

// ============================================================
// Raw wire types (OKX v5 envelopes, string-encoded numbers)
// ============================================================

type rawBalance struct {
	TotalEq string `json:"totalEq"`
	Details []struct {
		Ccy string `json:"ccy"`
		Upl string `json:"upl"`
	} `json:"details"`
}

type rawPosition struct {
	InstID  string `json:"instId"`
	PosSide string `json:"posSide"`
	Pos     string `json:"pos"`
	AvgPx   string `json:"avgPx"`
	Last    string `json:"last"`
	Upl     string `json:"upl"`
	Lever   string `json:"lever"`
}

type rawAlgoOrder struct {
	AlgoID        string `json:"algoId"`
	InstID        string `json:"instId"`
	PosSide       string `json:"posSide"`
	OrdType       string `json:"ordType"`
	SlTriggerPx   string `json:"slTriggerPx"`
	Sz            string `json:"sz"`
	CloseFraction string `json:"closeFraction"`
}
