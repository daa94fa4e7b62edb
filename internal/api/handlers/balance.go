package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/wonny/realbalance/internal/stoploss"
	"github.com/wonny/realbalance/pkg/logger"
)

// RealBalanceCalculator computes a fresh real-balance report.
// *stoploss.Calculator satisfies it; tests use a stub.
type RealBalanceCalculator interface {
	ComputeRealBalance(ctx context.Context) (*stoploss.Report, error)
}

// BalanceHandler serves the real-balance report API.
type BalanceHandler struct {
	calc   RealBalanceCalculator
	logger *logger.Logger
}

// NewBalanceHandler creates a new balance handler
func NewBalanceHandler(calc RealBalanceCalculator, log *logger.Logger) *BalanceHandler {
	return &BalanceHandler{
		calc:   calc,
		logger: log,
	}
}

// GetBalance computes and returns the full real-balance report.
// GET /api/balance
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.calc.ComputeRealBalance(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute real balance")
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
