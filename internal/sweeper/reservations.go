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

// ReservationSweeperConfig holds configuration for the reservation sweeper
type ReservationSweeperConfig struct {
	// ReservationTTL is how long a reserved purchase may sit unsigned
	ReservationTTL time.Duration
	// SweepInterval is the sleep between sweep cycles
	SweepInterval time.Duration
	// BatchSize caps rows reaped per cycle
	BatchSize int
}

// reservationSweeper reaps stale reserved purchases into abandoned. A
// reservation whose blockhash window has long passed can never be submitted,
// so leaving it reserved only clutters status polling.
type reservationSweeper struct {
	config    *ReservationSweeperConfig
	store     store.Store
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewReservationSweeper creates a new reservation sweeper
func NewReservationSweeper(config *ReservationSweeperConfig, st store.Store, clock adapter.Clock) Sweeper {
	return &reservationSweeper{
		config:    config,
		store:     st,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *reservationSweeper) Name() string {
	return "reservation-sweeper"
}

// Start begins the sweeper's main loop
func (s *reservationSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting reservation sweeper",
		zap.Duration("reservation_ttl", s.config.ReservationTTL),
		zap.Duration("sweep_interval", s.config.SweepInterval),
		zap.Int("batch_size", s.config.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Reservation sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Reservation sweeper stop requested")
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
func (s *reservationSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping reservation sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Reservation sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Reservation sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle reaps one batch of stale reservations
func (s *reservationSweeper) runSweepCycle(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.config.ReservationTTL)

	reaped, err := s.store.SweepExpiredReservations(ctx, cutoff, s.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to sweep expired reservations: %w", err)
	}
	if reaped > 0 {
		logger.InfoCtx(ctx, "Reaped expired reservations",
			zap.Int64("count", reaped),
			zap.Time("cutoff", cutoff))
	}
	return nil
}

// sleep waits for d, returning false if interrupted
func (s *reservationSweeper) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-s.clock.After(d):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
