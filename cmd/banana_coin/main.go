package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/banana-coin-ledger/internal/config"
	"github.com/banana-coin-ledger/internal/demo"
	"github.com/banana-coin-ledger/internal/logger"
)

func main() {
	// Cancel the run on SIGINT or SIGTERM
	appCtx, cancelAppCtx := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("banana_coin")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	log.Info("Starting Banana Coin demo",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
		"output_format", cfg.Demo.OutputFormat,
	)

	encoder, err := demo.NewEncoder(cfg.Demo.OutputFormat)
	if err != nil {
		log.Error("Failed to initialize encoder", "error", err)
		os.Exit(1)
	}

	runner := demo.NewRunner(log, &cfg.Demo, encoder)

	result, err := runner.Run(appCtx, os.Stdout)
	if err != nil {
		log.Error("Demo run failed", "error", err)
		cancelAppCtx()
		os.Exit(1)
	}

	log.Info("Demo finished",
		"entity_id", result.Entity.ID(),
		"balance", result.Entity.Wallet().Balance(),
		"transaction_id", result.Transaction.ID(),
		"failures", len(result.Failures),
	)
}
