package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cdecaire/desperse-public-sub004/internal/adapter"
	"github.com/cdecaire/desperse-public-sub004/internal/config"
	"github.com/cdecaire/desperse-public-sub004/internal/fulfillment"
	"github.com/cdecaire/desperse-public-sub004/internal/logger"
	"github.com/cdecaire/desperse-public-sub004/internal/messaging"
	"github.com/cdecaire/desperse-public-sub004/internal/snapshot"
	"github.com/cdecaire/desperse-public-sub004/internal/solana"
	"github.com/cdecaire/desperse-public-sub004/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "fulfillment-worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting fulfillment worker")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	// Initialize chain access
	chainClient := solana.NewChainClient(cfg.Solana.RPCURL)
	minter, err := solana.NewMinter(cfg.Solana.RPCURL, cfg.Solana.MintAuthoritySecret)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize minter", zap.Error(err))
	}

	// Connect to NATS JetStream for purchase lifecycle events
	publisher, err := messaging.NewJetStreamPublisher(ctx, messaging.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(30 * time.Second)

	snapshotter := snapshot.NewSnapshotter(dataStore, httpClient, clock)
	confirmer := fulfillment.NewConfirmer(dataStore, chainClient, publisher, clock, cfg.Fulfillment.ConfirmationWaitBudget)

	worker := fulfillment.NewWorker(
		&fulfillment.Config{
			PoolSize:     cfg.Fulfillment.Worker.PoolSize,
			QueueSize:    cfg.Fulfillment.Worker.QueueSize,
			PollInterval: cfg.Fulfillment.PollInterval,
			BatchSize:    cfg.Fulfillment.BatchSize,
		},
		dataStore,
		confirmer,
		minter,
		snapshotter,
		publisher,
		clock,
	)

	// Start worker in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := worker.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	if err := worker.Stop(stopCtx); err != nil {
		logger.ErrorCtx(stopCtx, err)
	}

	logger.InfoCtx(stopCtx, "Fulfillment worker stopped")
}
