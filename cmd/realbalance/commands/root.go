package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "realbalance",
	Short: "OKX real balance calculator",
	Long: `realbalance estimates an account's floor balance under the
assumption that every pending stop-loss order fires sequentially
against the open perpetual swap positions.

Usage:
  go run ./cmd/realbalance [command]

Examples:
  go run ./cmd/realbalance api
  go run ./cmd/realbalance report
  go run ./cmd/realbalance watch --schedule "@every 5m"`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
