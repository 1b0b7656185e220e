package purchase_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdecaire/desperse-public-sub004/internal/domain"
	"github.com/cdecaire/desperse-public-sub004/internal/logger"
	"github.com/cdecaire/desperse-public-sub004/internal/mocks"
	"github.com/cdecaire/desperse-public-sub004/internal/pricing"
	"github.com/cdecaire/desperse-public-sub004/internal/purchase"
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

const reservationTTL = 30 * time.Minute

type serviceMocks struct {
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	builder *mocks.MockTransactionBuilder
	chain   *mocks.MockChainClient
	clock   *mocks.MockClock
}

func newService(t *testing.T, platformWallet string) (*purchase.Service, *serviceMocks) {
	ctrl := gomock.NewController(t)
	m := &serviceMocks{
		ctrl:    ctrl,
		store:   mocks.NewMockStore(ctrl),
		builder: mocks.NewMockTransactionBuilder(ctrl),
		chain:   mocks.NewMockChainClient(ctrl),
		clock:   mocks.NewMockClock(ctrl),
	}
	svc := purchase.NewService(m.store, m.builder, m.chain, m.clock, platformWallet, usdcMint, 250, reservationTTL)
	return svc, m
}

var (
	buyerWallet    = solanago.NewWallet().PublicKey().String()
	creatorWallet  = solanago.NewWallet().PublicKey().String()
	platformWallet = solanago.NewWallet().PublicKey().String()
	usdcMint       = solanago.NewWallet().PublicKey().String()
)

func editionPost(currency domain.Currency, price uint64) *schema.Post {
	maxSupply := uint64(10)
	return &schema.Post{
		ID:            "post-1",
		UserID:        "creator-user",
		Title:         "Numbered Print",
		IsEdition:     true,
		Price:         price,
		Currency:      string(currency),
		CreatorWallet: creatorWallet,
		MaxSupply:     &maxSupply,
		CurrentSupply: 0,
	}
}

func TestService_Buy(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects malformed wallet address", func(t *testing.T) {
		svc, _ := newService(t, platformWallet)

		_, err := svc.Buy(ctx, "user-1", "post-1", "not-an-address")
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})

	t.Run("rejects non-edition post", func(t *testing.T) {
		svc, m := newService(t, platformWallet)
		post := editionPost(domain.CurrencySOL, 100_000_000)
		post.IsEdition = false
		m.store.EXPECT().GetPostByID(gomock.Any(), "post-1").Return(post, nil)

		_, err := svc.Buy(ctx, "user-1", "post-1", buyerWallet)
		assert.ErrorIs(t, err, domain.ErrNotAnEdition)
	})

	t.Run("rejects sold out edition", func(t *testing.T) {
		svc, m := newService(t, platformWallet)
		post := editionPost(domain.CurrencySOL, 100_000_000)
		post.CurrentSupply = *post.MaxSupply
		m.store.EXPECT().GetPostByID(gomock.Any(), "post-1").Return(post, nil)

		_, err := svc.Buy(ctx, "user-1", "post-1", buyerWallet)
		assert.ErrorIs(t, err, domain.ErrSoldOut)
	})

	t.Run("rejects buyer short on native balance", func(t *testing.T) {
		svc, m := newService(t, platformWallet)
		post := editionPost(domain.CurrencySOL, 100_000_000)
		m.store.EXPECT().GetPostByID(gomock.Any(), "post-1").Return(post, nil)
		// Needs price plus minting fee, has half the price
		m.chain.EXPECT().GetBalance(gomock.Any(), buyerWallet).Return(uint64(50_000_000), nil)

		_, err := svc.Buy(ctx, "user-1", "post-1", buyerWallet)

		var insufficient *domain.InsufficientFundsError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, domain.CurrencySOL, insufficient.Currency)
		assert.Equal(t, uint64(100_000_000+pricing.MintingFeeLamports), insufficient.Required)
		assert.Equal(t, uint64(50_000_000), insufficient.Available)
		assert.Equal(t, uint64(60_000_000), insufficient.Shortfall())
	})

	t.Run("token purchase still requires native minting fee", func(t *testing.T) {
		svc, m := newService(t, platformWallet)
		post := editionPost(domain.CurrencyUSDC, 25_000_000)
		m.store.EXPECT().GetPostByID(gomock.Any(), "post-1").Return(post, nil)
		m.chain.EXPECT().GetBalance(gomock.Any(), buyerWallet).Return(uint64(1_000), nil)

		_, err := svc.Buy(ctx, "user-1", "post-1", buyerWallet)

		var insufficient *domain.InsufficientFundsError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, domain.CurrencySOL, insufficient.Currency)
		assert.Equal(t, pricing.MintingFeeLamports, insufficient.Required)
	})

	t.Run("rejects buyer short on token balance", func(t *testing.T) {
		svc, m := newService(t, platformWallet)
		post := editionPost(domain.CurrencyUSDC, 25_000_000)
		m.store.EXPECT().GetPostByID(gomock.Any(), "post-1").Return(post, nil)
		m.chain.EXPECT().GetBalance(gomock.Any(), buyerWallet).Return(uint64(1_000_000_000), nil)
		m.chain.EXPECT().GetTokenBalance(gomock.Any(), buyerWallet, usdcMint).Return(uint64(10_000_000), nil)

		_, err := svc.Buy(ctx, "user-1", "post-1", buyerWallet)

		var insufficient *domain.InsufficientFundsError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, domain.CurrencyUSDC, insufficient.Currency)
		assert.Equal(t, uint64(25_000_000), insufficient.Required)
		assert.Equal(t, uint64(10_000_000), insufficient.Available)
	})

	t.Run("reserves and returns unsigned transaction", func(t *testing.T) {
		svc, m := newService(t, platformWallet)
		post := editionPost(domain.CurrencySOL, 100_000_000)
		quote := pricing.Calculate(post.Price, 250)

		m.store.EXPECT().GetPostByID(gomock.Any(), "post-1").Return(post, nil)
		m.chain.EXPECT().GetBalance(gomock.Any(), buyerWallet).Return(uint64(1_000_000_000), nil)
		m.builder.EXPECT().
			Build(gomock.Any(), solana.BuildParams{
				Buyer:     buyerWallet,
				Creator:   creatorWallet,
				Platform:  platformWallet,
				Price:     post.Price,
				Currency:  domain.CurrencySOL,
				TokenMint: usdcMint,
			}).
			Return(&solana.UnsignedTx{
				Base64:               "dHgtYnl0ZXM=",
				Blockhash:            "GfVcyD4kkTrj4bKc7WA9sZCin9JDbdT4Zkd3EittNR1W",
				LastValidBlockHeight: 5_000,
				Quote:                quote,
			}, nil)

		var created *schema.Purchase
		m.store.EXPECT().
			CreatePurchase(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *schema.Purchase) error {
				created = p
				return nil
			})

		now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		m.clock.EXPECT().Now().Return(now)

		result, err := svc.Buy(ctx, "user-1", "post-1", buyerWallet)
		require.NoError(t, err)

		assert.Equal(t, domain.PurchaseReserved, result.Status)
		assert.Equal(t, "dHgtYnl0ZXM=", result.UnsignedTxBase64)
		assert.Equal(t, uint64(5_000), result.LastValidBlockHeight)
		assert.Equal(t, now.Add(reservationTTL), result.ExpiresAt)
		assert.Equal(t, domain.CurrencySOL, result.Currency)

		require.NotNil(t, created)
		assert.Equal(t, result.PurchaseID, created.ID)
		assert.Equal(t, "user-1", created.UserID)
		assert.Equal(t, buyerWallet, created.BuyerWallet)
		assert.Equal(t, quote.CreatorAmount, created.CreatorAmount)
		assert.Equal(t, quote.PlatformFee, created.PlatformFee)
		assert.Equal(t, uint64(5_000), created.LastValidBlockHeight)
	})

	t.Run("surfaces rpc outage", func(t *testing.T) {
		svc, m := newService(t, platformWallet)
		post := editionPost(domain.CurrencySOL, 100_000_000)
		m.store.EXPECT().GetPostByID(gomock.Any(), "post-1").Return(post, nil)
		m.chain.EXPECT().GetBalance(gomock.Any(), buyerWallet).Return(uint64(0), errors.New("connection refused"))

		_, err := svc.Buy(ctx, "user-1", "post-1", buyerWallet)
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})
}

func TestService_SubmitSignature(t *testing.T) {
	ctx := context.Background()
	sig := "5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW"

	reserved := func() *schema.Purchase {
		return &schema.Purchase{
			ID:                   "purchase-1",
			PostID:               "post-1",
			UserID:               "user-1",
			BuyerWallet:          buyerWallet,
			Status:               domain.PurchaseReserved,
			LastValidBlockHeight: 5_000,
		}
	}

	t.Run("rejects submission by another user", func(t *testing.T) {
		svc, m := newService(t, platformWallet)
		m.store.EXPECT().GetPurchaseByID(gomock.Any(), "purchase-1").Return(reserved(), nil)

		_, err := svc.SubmitSignature(ctx, "someone-else", "purchase-1", sig)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("resubmitting the recorded signature is a no-op", func(t *testing.T) {
		svc, m := newService(t, platformWallet)
		p := reserved()
		p.Status = domain.PurchaseSubmitted
		p.TxSignature = &sig
		// Once for the ownership check, once for the status read; the chain
		// is never consulted and nothing is written.
		m.store.EXPECT().GetPurchaseByID(gomock.Any(), "purchase-1").Return(p, nil).Times(2)

		result, err := svc.SubmitSignature(ctx, "user-1", "purchase-1", sig)
		require.NoError(t, err)
		assert.Equal(t, domain.PurchaseSubmitted, result.Status)
	})

	t.Run("rejects submission after blockhash expiry", func(t *testing.T) {
		svc, m := newService(t, platformWallet)
		m.store.EXPECT().GetPurchaseByID(gomock.Any(), "purchase-1").Return(reserved(), nil)
		m.chain.EXPECT().GetBlockHeight(gomock.Any()).Return(uint64(5_001), nil)

		_, err := svc.SubmitSignature(ctx, "user-1", "purchase-1", sig)
		assert.ErrorIs(t, err, domain.ErrBlockhashExpired)
	})

	t.Run("records signature while blockhash is live", func(t *testing.T) {
		svc, m := newService(t, platformWallet)
		m.store.EXPECT().GetPurchaseByID(gomock.Any(), "purchase-1").Return(reserved(), nil)
		m.chain.EXPECT().GetBlockHeight(gomock.Any()).Return(uint64(4_999), nil)
		m.store.EXPECT().SubmitPurchaseSignature(gomock.Any(), "purchase-1", sig).Return(nil)

		submitted := reserved()
		submitted.Status = domain.PurchaseSubmitted
		submitted.TxSignature = &sig
		m.store.EXPECT().GetPurchaseByID(gomock.Any(), "purchase-1").Return(submitted, nil)

		result, err := svc.SubmitSignature(ctx, "user-1", "purchase-1", sig)
		require.NoError(t, err)
		assert.Equal(t, domain.PurchaseSubmitted, result.Status)
		require.NotNil(t, result.TxSignature)
		assert.Equal(t, sig, *result.TxSignature)
	})
}

func TestService_Status(t *testing.T) {
	ctx := context.Background()

	t.Run("returns terminal state with mint details", func(t *testing.T) {
		svc, m := newService(t, platformWallet)
		mint := solanago.NewWallet().PublicKey().String()
		edition := uint64(3)
		sig := "signature"
		m.store.EXPECT().GetPurchaseByID(gomock.Any(), "purchase-1").Return(&schema.Purchase{
			ID:            "purchase-1",
			Status:        domain.PurchaseConfirmed,
			TxSignature:   &sig,
			NftMint:       &mint,
			EditionNumber: &edition,
		}, nil)

		result, err := svc.Status(ctx, "purchase-1")
		require.NoError(t, err)
		assert.True(t, result.Status.Terminal())
		assert.Equal(t, mint, *result.NftMint)
		assert.Equal(t, uint64(3), *result.EditionNumber)
	})

	t.Run("propagates not found", func(t *testing.T) {
		svc, m := newService(t, platformWallet)
		m.store.EXPECT().GetPurchaseByID(gomock.Any(), "missing").Return(nil, domain.ErrPurchaseNotFound)

		_, err := svc.Status(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrPurchaseNotFound)
	})
}
