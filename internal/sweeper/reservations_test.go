package sweeper_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdecaire/desperse-public-sub004/internal/logger"
	"github.com/cdecaire/desperse-public-sub004/internal/mocks"
	"github.com/cdecaire/desperse-public-sub004/internal/sweeper"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func TestReservationSweeper_Name(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := sweeper.NewReservationSweeper(&sweeper.ReservationSweeperConfig{}, mocks.NewMockStore(ctrl), mocks.NewMockClock(ctrl))
	assert.Equal(t, "reservation-sweeper", s.Name())
}

func TestReservationSweeper_SweepsWithTTLCutoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	clock := mocks.NewMockClock(ctrl)

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	ttl := 30 * time.Minute

	s := sweeper.NewReservationSweeper(&sweeper.ReservationSweeperConfig{
		ReservationTTL: ttl,
		SweepInterval:  time.Minute,
		BatchSize:      500,
	}, st, clock)

	swept := make(chan struct{})
	clock.EXPECT().Now().Return(now).AnyTimes()
	st.EXPECT().
		SweepExpiredReservations(gomock.Any(), now.Add(-ttl), 500).
		DoAndReturn(func(_ context.Context, _ time.Time, _ int) (int64, error) {
			close(swept)
			return 3, nil
		})
	// Swallow any further cycles while the loop winds down
	st.EXPECT().SweepExpiredReservations(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()

	after := make(chan time.Time)
	clock.EXPECT().After(time.Minute).Return((<-chan time.Time)(after)).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start(ctx)
	}()

	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep cycle never ran")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	require.NoError(t, s.Stop(stopCtx))

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestReservationSweeper_StartTwiceFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	clock := mocks.NewMockClock(ctrl)

	clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	st.EXPECT().SweepExpiredReservations(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()

	after := make(chan time.Time)
	clock.EXPECT().After(gomock.Any()).Return((<-chan time.Time)(after)).AnyTimes()

	s := sweeper.NewReservationSweeper(&sweeper.ReservationSweeperConfig{
		ReservationTTL: time.Minute,
		SweepInterval:  time.Minute,
		BatchSize:      10,
	}, st, clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = s.Start(ctx)
	}()
	time.Sleep(50 * time.Millisecond)

	err := s.Start(ctx)
	assert.Error(t, err)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	require.NoError(t, s.Stop(stopCtx))
}
