package commands

import (
	"fmt"

	"github.com/wonny/realbalance/internal/external/okx"
	"github.com/wonny/realbalance/internal/instruments"
	"github.com/wonny/realbalance/internal/stoploss"
	"github.com/wonny/realbalance/pkg/config"
	"github.com/wonny/realbalance/pkg/httputil"
	"github.com/wonny/realbalance/pkg/logger"
)

// buildCalculator wires config, logging, the OKX client and the
// instruments table into a ready calculator. Shared by every command
// that computes a report.
func buildCalculator() (*config.Config, *logger.Logger, *stoploss.Calculator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	if !cfg.HasCredentials() {
		return nil, nil, nil, fmt.Errorf("OKX credentials missing: set OKX_API_KEY, OKX_SECRET_KEY and OKX_PASSPHRASE")
	}

	table := instruments.DefaultTable()
	if cfg.InstrumentsFile != "" {
		table, err = instruments.Load(cfg.InstrumentsFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("load instruments table: %w", err)
		}
		log.WithField("file", cfg.InstrumentsFile).Info("Instruments table loaded")
	}

	httpClient := httputil.NewWithTimeout(cfg, log, cfg.OKX.Timeout).
		WithRateLimit(cfg.OKX.RateLimit)

	okxClient := okx.NewClient(cfg.OKX, httpClient, log)
	calc := stoploss.NewCalculator(okxClient, table, log)

	return cfg, log, calc, nil
}
