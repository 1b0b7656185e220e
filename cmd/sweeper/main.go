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
	"github.com/cdecaire/desperse-public-sub004/internal/logger"
	"github.com/cdecaire/desperse-public-sub004/internal/store"
	"github.com/cdecaire/desperse-public-sub004/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
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
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting sweeper service")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	clock := adapter.NewClock()
	sweepers := []sweeper.Sweeper{
		sweeper.NewReservationSweeper(&sweeper.ReservationSweeperConfig{
			ReservationTTL: cfg.Sweeper.ReservationTTL,
			SweepInterval:  cfg.Sweeper.SweepInterval,
			BatchSize:      cfg.Sweeper.BatchSize,
		}, dataStore, clock),
		sweeper.NewStaleClaimSweeper(&sweeper.StaleClaimSweeperConfig{
			ClaimTTL:      cfg.StaleClaims.ClaimTTL,
			SweepInterval: cfg.StaleClaims.SweepInterval,
			BatchSize:     cfg.StaleClaims.BatchSize,
		}, dataStore, clock),
	}

	// Start the sweepers in goroutines
	errChan := make(chan error, len(sweepers))
	for _, sw := range sweepers {
		go func(sw sweeper.Sweeper) {
			if err := sw.Start(ctx); err != nil {
				errChan <- fmt.Errorf("%s: %w", sw.Name(), err)
			}
		}(sw)
	}

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

	for _, sw := range sweepers {
		if err := sw.Stop(stopCtx); err != nil {
			logger.ErrorCtx(stopCtx, err)
		}
	}

	logger.InfoCtx(stopCtx, "Sweeper service stopped")
}
