package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/driftwood-social/driftwood/internal/aggregate"
	"github.com/driftwood-social/driftwood/internal/api"
	"github.com/driftwood-social/driftwood/internal/cache"
	"github.com/driftwood-social/driftwood/internal/db"
	"github.com/driftwood-social/driftwood/internal/feed"
	"github.com/driftwood-social/driftwood/internal/notify"
	"github.com/driftwood-social/driftwood/internal/vote"
	"github.com/driftwood-social/driftwood/pkg/config"
	"github.com/driftwood-social/driftwood/pkg/logging"
	"github.com/driftwood-social/driftwood/pkg/telemetry"
)

func main() {
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
	logger.Info("Starting Driftwood API Server")

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

	redisCache, err := cache.New(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()

	// Wire the core: ledger writes, maintainer recounts, notifier
	// emits, composer reads.
	repo := db.NewRepository(database.DB)
	maintainer := aggregate.NewMaintainer(repo, cfg.Vote.MaxRetries)
	notifier := notify.NewNotifier(repo)
	ledger := vote.NewLedger(repo, maintainer, notifier, cfg.Vote.MaxRetries)
	composer := feed.NewComposer(repo, ledger, redisCache,
		cfg.Feed.DefaultPageSize, cfg.Feed.MaxPageSize, cfg.Feed.CacheEnabled)

	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	router := api.NewRouter(database, redisCache, ledger, composer, notifier, cfg)
	router.SetupRoutes(engine)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
