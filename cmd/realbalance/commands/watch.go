package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically recompute and log the real balance",
	Long: `Runs the real-balance computation on a schedule and logs the result.

The schedule accepts cron expressions and @every intervals
(robfig/cron syntax).

Example:
  go run ./cmd/realbalance watch
  go run ./cmd/realbalance watch --schedule "@every 5m"`,
	RunE: runWatch,
}

var watchSchedule string

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "", "cron schedule (overrides WATCH_SCHEDULE)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, log, calc, err := buildCalculator()
	if err != nil {
		return err
	}

	schedule := cfg.WatchSchedule
	if watchSchedule != "" {
		schedule = watchSchedule
	}

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		report, err := calc.ComputeRealBalance(ctx)
		if err != nil {
			log.WithError(err).Error("Real balance computation failed")
			return
		}

		log.WithFields(map[string]interface{}{
			"real_balance":         report.RealBalance,
			"account_balance":      report.AccountBalance,
			"total_equity":         report.TotalEquity,
			"total_potential_loss": report.TotalPotentialLoss,
			"positions":            len(report.Positions),
			"stop_orders":          len(report.StopOrders),
		}).Info("Real balance snapshot")
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, run); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	log.WithField("schedule", schedule).Info("Watch started")

	// First snapshot immediately, then on schedule
	run()
	c.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Stopping watch")
	stopCtx := c.Stop()
	<-stopCtx.Done()

	return nil
}
