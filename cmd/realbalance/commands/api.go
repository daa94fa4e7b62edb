package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/realbalance/internal/api"
	"github.com/wonny/realbalance/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the dashboard and API server",
	Long: `Starts the HTTP server serving the real-balance dashboard and API.

Endpoints:
  GET  /             - Dashboard
  GET  /health       - Health check
  GET  /api/balance  - Real-balance report (JSON)

Example:
  go run ./cmd/realbalance api
  go run ./cmd/realbalance api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, log, calc, err := buildCalculator()
	if err != nil {
		return err
	}

	if apiPort != "" {
		cfg.Port = apiPort
	}

	balanceHandler := handlers.NewBalanceHandler(calc, log)
	router := api.NewRouter(balanceHandler, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
