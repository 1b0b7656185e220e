package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cdecaire/desperse-public-sub004/internal/adapter"
	"github.com/cdecaire/desperse-public-sub004/internal/logger"
	"github.com/cdecaire/desperse-public-sub004/internal/store"
)

// StaleClaimSweeperConfig holds configuration for the stale claim sweeper
type StaleClaimSweeperConfig struct {
	// ClaimTTL is how long a purchase may sit in minting before its
	// fulfillment claim counts as stale
	ClaimTTL time.Duration
	// SweepInterval is the sleep between sweep cycles
	SweepInterval time.Duration
	// BatchSize caps rows surfaced per cycle
	BatchSize int
}

// staleClaimSweeper surfaces purchases stuck in minting after their worker
// died mid-fulfillment. It only logs: a crash between the mint send and the
// confirmation write looks identical to a crash before the send, so requeuing
// the purchase automatically could mint the same edition twice. Operators
// resolve these by checking the chain for the claim's mint.
type staleClaimSweeper struct {
	config    *StaleClaimSweeperConfig
	store     store.Store
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewStaleClaimSweeper creates a new stale claim sweeper
func NewStaleClaimSweeper(config *StaleClaimSweeperConfig, st store.Store, clock adapter.Clock) Sweeper {
	return &staleClaimSweeper{
		config:    config,
		store:     st,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *staleClaimSweeper) Name() string {
	return "stale-claim-sweeper"
}

// Start begins the sweeper's main loop
func (s *staleClaimSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting stale claim sweeper",
		zap.Duration("claim_ttl", s.config.ClaimTTL),
		zap.Duration("sweep_interval", s.config.SweepInterval),
		zap.Int("batch_size", s.config.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Stale claim sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Stale claim sweeper stop requested")
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
			if !s.sleep(ctx, s.config.SweepInterval) {
				return nil
			}
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *staleClaimSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping stale claim sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Stale claim sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Stale claim sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle surfaces one batch of stale minting claims
func (s *staleClaimSweeper) runSweepCycle(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.config.ClaimTTL)

	stale, err := s.store.ListStaleMintingPurchases(ctx, cutoff, s.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list stale minting purchases: %w", err)
	}
	for _, purchase := range stale {
		fields := []zap.Field{
			zap.String("purchase_id", purchase.ID),
			zap.String("post_id", purchase.PostID),
			zap.Time("cutoff", cutoff),
		}
		if purchase.FulfillmentClaimedAt != nil {
			fields = append(fields, zap.Time("claimed_at", *purchase.FulfillmentClaimedAt))
		}
		logger.WarnCtx(ctx, "Purchase stuck in minting past claim TTL, needs manual reconciliation", fields...)
	}
	return nil
}

// sleep waits for d, returning false if interrupted
func (s *staleClaimSweeper) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-s.clock.After(d):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
