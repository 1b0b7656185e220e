package sweeper_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdecaire/desperse-public-sub004/internal/mocks"
	"github.com/cdecaire/desperse-public-sub004/internal/store/schema"
	"github.com/cdecaire/desperse-public-sub004/internal/sweeper"
)

func TestStaleClaimSweeper_Name(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := sweeper.NewStaleClaimSweeper(&sweeper.StaleClaimSweeperConfig{}, mocks.NewMockStore(ctrl), mocks.NewMockClock(ctrl))
	assert.Equal(t, "stale-claim-sweeper", s.Name())
}

func TestStaleClaimSweeper_SurfacesStuckClaims(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	clock := mocks.NewMockClock(ctrl)

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	ttl := 15 * time.Minute
	claimedAt := now.Add(-time.Hour)

	s := sweeper.NewStaleClaimSweeper(&sweeper.StaleClaimSweeperConfig{
		ClaimTTL:      ttl,
		SweepInterval: time.Minute,
		BatchSize:     100,
	}, st, clock)

	listed := make(chan struct{})
	clock.EXPECT().Now().Return(now).AnyTimes()
	st.EXPECT().
		ListStaleMintingPurchases(gomock.Any(), now.Add(-ttl), 100).
		DoAndReturn(func(_ context.Context, _ time.Time, _ int) ([]schema.Purchase, error) {
			close(listed)
			return []schema.Purchase{{
				ID:                   "purchase-1",
				PostID:               "post-1",
				FulfillmentClaimedAt: &claimedAt,
			}}, nil
		})
	// Swallow any further cycles while the loop winds down. The sweeper must
	// never mutate the row, so only the list call is expected.
	st.EXPECT().ListStaleMintingPurchases(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	after := make(chan time.Time)
	clock.EXPECT().After(time.Minute).Return((<-chan time.Time)(after)).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start(ctx)
	}()

	select {
	case <-listed:
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
