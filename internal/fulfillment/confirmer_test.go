package fulfillment_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdecaire/desperse-public-sub004/internal/domain"
	"github.com/cdecaire/desperse-public-sub004/internal/fulfillment"
	"github.com/cdecaire/desperse-public-sub004/internal/logger"
	"github.com/cdecaire/desperse-public-sub004/internal/messaging"
	"github.com/cdecaire/desperse-public-sub004/internal/mocks"
	"github.com/cdecaire/desperse-public-sub004/internal/solana"
	"github.com/cdecaire/desperse-public-sub004/internal/store/schema"
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

const waitBudget = 10 * time.Minute

type confirmerMocks struct {
	store     *mocks.MockStore
	chain     *mocks.MockChainClient
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
}

func newConfirmer(t *testing.T) (*fulfillment.Confirmer, *confirmerMocks) {
	ctrl := gomock.NewController(t)
	m := &confirmerMocks{
		store:     mocks.NewMockStore(ctrl),
		chain:     mocks.NewMockChainClient(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}
	m.clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	return fulfillment.NewConfirmer(m.store, m.chain, m.publisher, m.clock, waitBudget), m
}

func submittedPurchase() *schema.Purchase {
	sig := "4sGjMW1sUnHzSxGspuhpqLDx6wiyjNtZAMdL4VZHirAn"
	return &schema.Purchase{
		ID:          "purchase-1",
		PostID:      "post-1",
		Status:      domain.PurchaseSubmitted,
		TxSignature: &sig,
		UpdatedAt:   time.Now(),
	}
}

func TestConfirmer_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed payment advances to awaiting fulfillment", func(t *testing.T) {
		c, m := newConfirmer(t)
		p := submittedPurchase()

		m.chain.EXPECT().GetSignatureStatus(gomock.Any(), *p.TxSignature).Return(solana.TxConfirmed, nil)
		m.store.EXPECT().MarkPurchaseAwaitingFulfillment(gomock.Any(), p.ID).Return(true, nil)
		m.publisher.EXPECT().
			PublishPurchaseEvent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event *messaging.PurchaseEvent) error {
				assert.Equal(t, p.ID, event.PurchaseID)
				assert.Equal(t, domain.PurchaseAwaitingFulfillment, event.Status)
				assert.NotEmpty(t, event.EventID)
				return nil
			})

		require.NoError(t, c.Process(ctx, p))
	})

	t.Run("losing the confirmation race publishes nothing", func(t *testing.T) {
		c, m := newConfirmer(t)
		p := submittedPurchase()

		m.chain.EXPECT().GetSignatureStatus(gomock.Any(), *p.TxSignature).Return(solana.TxConfirmed, nil)
		m.store.EXPECT().MarkPurchaseAwaitingFulfillment(gomock.Any(), p.ID).Return(false, nil)

		require.NoError(t, c.Process(ctx, p))
	})

	t.Run("failed transaction marks the purchase failed", func(t *testing.T) {
		c, m := newConfirmer(t)
		p := submittedPurchase()

		m.chain.EXPECT().GetSignatureStatus(gomock.Any(), *p.TxSignature).Return(solana.TxFailed, nil)
		m.store.EXPECT().MarkPurchaseFailed(gomock.Any(), p.ID, gomock.Any()).Return(true, nil)
		m.publisher.EXPECT().
			PublishPurchaseEvent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event *messaging.PurchaseEvent) error {
				assert.Equal(t, domain.PurchaseFailed, event.Status)
				return nil
			})

		require.NoError(t, c.Process(ctx, p))
	})

	t.Run("pending inside the wait budget is left alone", func(t *testing.T) {
		c, m := newConfirmer(t)
		p := submittedPurchase()

		m.chain.EXPECT().GetSignatureStatus(gomock.Any(), *p.TxSignature).Return(solana.TxPending, nil)
		m.clock.EXPECT().Since(p.UpdatedAt).Return(2 * time.Minute)

		require.NoError(t, c.Process(ctx, p))
	})

	t.Run("pending past the wait budget is abandoned", func(t *testing.T) {
		c, m := newConfirmer(t)
		p := submittedPurchase()

		m.chain.EXPECT().GetSignatureStatus(gomock.Any(), *p.TxSignature).Return(solana.TxPending, nil)
		m.clock.EXPECT().Since(p.UpdatedAt).Return(waitBudget + time.Second)
		m.store.EXPECT().MarkPurchaseAbandoned(gomock.Any(), p.ID, gomock.Any()).Return(true, nil)
		m.publisher.EXPECT().
			PublishPurchaseEvent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event *messaging.PurchaseEvent) error {
				assert.Equal(t, domain.PurchaseAbandoned, event.Status)
				return nil
			})

		require.NoError(t, c.Process(ctx, p))
	})

	t.Run("missing signature is skipped", func(t *testing.T) {
		c, _ := newConfirmer(t)
		p := submittedPurchase()
		p.TxSignature = nil

		require.NoError(t, c.Process(ctx, p))
	})

	t.Run("publish failure does not fail the transition", func(t *testing.T) {
		c, m := newConfirmer(t)
		p := submittedPurchase()

		m.chain.EXPECT().GetSignatureStatus(gomock.Any(), *p.TxSignature).Return(solana.TxConfirmed, nil)
		m.store.EXPECT().MarkPurchaseAwaitingFulfillment(gomock.Any(), p.ID).Return(true, nil)
		m.publisher.EXPECT().PublishPurchaseEvent(gomock.Any(), gomock.Any()).Return(errors.New("nats down"))

		require.NoError(t, c.Process(ctx, p))
	})

	t.Run("rpc error is returned for retry next cycle", func(t *testing.T) {
		c, m := newConfirmer(t)
		p := submittedPurchase()

		m.chain.EXPECT().GetSignatureStatus(gomock.Any(), *p.TxSignature).Return(solana.TxPending, errors.New("rpc timeout"))

		assert.Error(t, c.Process(ctx, p))
	})
}
