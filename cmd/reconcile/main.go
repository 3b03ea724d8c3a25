package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/driftwood-social/driftwood/internal/aggregate"
	"github.com/driftwood-social/driftwood/internal/db"
	"github.com/driftwood-social/driftwood/pkg/config"
	"github.com/driftwood-social/driftwood/pkg/logging"
	"github.com/driftwood-social/driftwood/pkg/telemetry"
)

func main() {
	batchSize := flag.Int("batch-size", 500, "items recounted per batch")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Driftwood Reconciler")

	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Interrupt received, stopping reconciliation...")
		cancel()
	}()

	repo := db.NewRepository(database.DB)
	maintainer := aggregate.NewMaintainer(repo, cfg.Vote.MaxRetries)
	reconciler := aggregate.NewReconciler(repo, maintainer, *batchSize)

	if err := reconciler.ReconcileAll(ctx); err != nil {
		logger.Fatal("Reconciliation failed", zap.Error(err))
	}

	logger.Info("Reconciler exited")
}
