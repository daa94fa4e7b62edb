package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/realbalance/internal/stoploss"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute the real balance once and print it",
	Long: `Fetches a fresh account snapshot, simulates every pending stop-loss
order triggering in sequence, and prints the resulting report.

Example:
  go run ./cmd/realbalance report
  go run ./cmd/realbalance report --json`,
	RunE: runReport,
}

var reportJSON bool

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print the raw report as JSON")
}

func runReport(cmd *cobra.Command, args []string) error {
	_, _, calc, err := buildCalculator()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	report, err := calc.ComputeRealBalance(ctx)
	if err != nil {
		return fmt.Errorf("compute real balance: %w", err)
	}

	if reportJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printReport(report)
	return nil
}

func printReport(report *stoploss.Report) {
	fmt.Println("=== Real Balance Report ===")
	fmt.Printf("Current equity:    %12.2f\n", report.TotalEquity)
	fmt.Printf("Unrealized PnL:    %+12.2f\n", report.AccountUPL)
	fmt.Printf("Account balance:   %12.2f\n", report.AccountBalance)
	fmt.Printf("Potential loss:    %12.2f\n", report.TotalPotentialLoss)
	fmt.Printf("Real balance:      %12.2f\n", report.RealBalance)

	if len(report.Positions) > 0 {
		fmt.Printf("\nPositions (%d):\n", len(report.Positions))
		for _, pos := range report.Positions {
			fmt.Printf("  %-22s %-5s qty=%-8.2f avg=%-10.2f last=%-10.2f upl=%+.2f\n",
				pos.InstID, pos.Side, pos.Quantity, pos.AvgPrice, pos.LastPrice, pos.UnrealizedPnL)
		}
	}

	if len(report.StopOrders) > 0 {
		fmt.Printf("\nStop orders in trigger order (%d):\n", len(report.StopOrders))
		for _, ord := range report.StopOrders {
			full := ""
			if ord.FullClose {
				full = " [full close]"
			}
			fmt.Printf("  %-22s %-11s qty=%-8.2f trigger=%-10.2f loss=%+.2f (%.2f%%)%s\n",
				ord.InstID, ord.Kind, ord.Quantity, ord.TriggerPrice, ord.Loss, ord.DistancePct, full)
		}
	}
}
