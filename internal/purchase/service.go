// Package purchase owns the purchase record lifecycle: reservation,
// signature submission and status reads.
package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cdecaire/desperse-public-sub004/internal/adapter"
	"github.com/cdecaire/desperse-public-sub004/internal/domain"
	"github.com/cdecaire/desperse-public-sub004/internal/logger"
	"github.com/cdecaire/desperse-public-sub004/internal/pricing"
	"github.com/cdecaire/desperse-public-sub004/internal/solana"
	"github.com/cdecaire/desperse-public-sub004/internal/store"
	"github.com/cdecaire/desperse-public-sub004/internal/store/schema"
)

// BuyResult is returned from a successful reservation. The client signs
// UnsignedTxBase64 with their wallet and comes back through SubmitSignature.
type BuyResult struct {
	PurchaseID           string
	Status               domain.PurchaseStatus
	UnsignedTxBase64     string
	Blockhash            string
	LastValidBlockHeight uint64
	// ExpiresAt is when the unsigned reservation gets reaped. The blockhash
	// window is usually tighter; this is the outer bound.
	ExpiresAt time.Time
	Price     uint64
	Currency  domain.Currency
}

// StatusResult is the polling view of a purchase. PurchaseID itself is the
// capability; no auth is required to read it.
type StatusResult struct {
	PurchaseID    string
	Status        domain.PurchaseStatus
	TxSignature   *string
	NftMint       *string
	EditionNumber *uint64
}

// Service coordinates reservations against the store and the chain.
type Service struct {
	store          store.Store
	builder        solana.TransactionBuilder
	chain          solana.ChainClient
	clock          adapter.Clock
	platformWallet string
	usdcMint       string
	platformFeeBps uint16
	reservationTTL time.Duration
}

// NewService creates a purchase service.
func NewService(
	s store.Store,
	builder solana.TransactionBuilder,
	chain solana.ChainClient,
	clock adapter.Clock,
	platformWallet string,
	usdcMint string,
	platformFeeBps uint16,
	reservationTTL time.Duration,
) *Service {
	return &Service{
		store:          s,
		builder:        builder,
		chain:          chain,
		clock:          clock,
		platformWallet: platformWallet,
		usdcMint:       usdcMint,
		platformFeeBps: platformFeeBps,
		reservationTTL: reservationTTL,
	}
}

// Buy reserves one edition copy for userID paying from buyerWallet. Each call
// creates a fresh reservation; an unsigned reservation is disposable and gets
// reaped by the sweeper if never submitted.
func (s *Service) Buy(ctx context.Context, userID string, postID string, buyerWallet string) (*BuyResult, error) {
	if !solana.ValidateAddress(buyerWallet) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, buyerWallet)
	}

	post, err := s.store.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsEdition {
		return nil, domain.ErrNotAnEdition
	}
	if post.SoldOut() {
		return nil, domain.ErrSoldOut
	}

	currency := domain.Currency(post.Currency)
	if !currency.Valid() {
		return nil, fmt.Errorf("post %s has unsupported currency %q", postID, post.Currency)
	}

	quote := pricing.Calculate(post.Price, s.platformFeeBps)
	if err := s.checkBalance(ctx, buyerWallet, currency, quote); err != nil {
		return nil, err
	}

	unsigned, err := s.builder.Build(ctx, solana.BuildParams{
		Buyer:     buyerWallet,
		Creator:   post.CreatorWallet,
		Platform:  s.platformWallet,
		Price:     post.Price,
		Currency:  currency,
		TokenMint: s.usdcMint,
	})
	if err != nil {
		return nil, err
	}

	purchase := &schema.Purchase{
		ID:                   uuid.NewString(),
		PostID:               post.ID,
		UserID:               userID,
		BuyerWallet:          buyerWallet,
		Price:                post.Price,
		Currency:             currency,
		Status:               domain.PurchaseReserved,
		CreatorAmount:        unsigned.Quote.CreatorAmount,
		PlatformFee:          unsigned.Quote.PlatformFee,
		Blockhash:            unsigned.Blockhash,
		LastValidBlockHeight: unsigned.LastValidBlockHeight,
	}
	if err := s.store.CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "purchase reserved",
		zap.String("purchase_id", purchase.ID),
		zap.String("post_id", post.ID),
		zap.String("currency", string(currency)),
		zap.Uint64("price", post.Price))

	return &BuyResult{
		PurchaseID:           purchase.ID,
		Status:               purchase.Status,
		UnsignedTxBase64:     unsigned.Base64,
		Blockhash:            unsigned.Blockhash,
		LastValidBlockHeight: unsigned.LastValidBlockHeight,
		ExpiresAt:            s.clock.Now().Add(s.reservationTTL),
		Price:                post.Price,
		Currency:             currency,
	}, nil
}

// checkBalance verifies the buyer can cover price plus fees. The minting fee
// is always checked against the native balance.
func (s *Service) checkBalance(ctx context.Context, buyerWallet string, currency domain.Currency, quote pricing.Quote) error {
	nativeBalance, err := s.chain.GetBalance(ctx, buyerWallet)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	switch currency {
	case domain.CurrencySOL:
		required := quote.Total() + quote.MintingFee
		if nativeBalance < required {
			return &domain.InsufficientFundsError{
				Currency:  currency,
				Required:  required,
				Available: nativeBalance,
			}
		}
	case domain.CurrencyUSDC:
		if nativeBalance < quote.MintingFee {
			return &domain.InsufficientFundsError{
				Currency:  domain.CurrencySOL,
				Required:  quote.MintingFee,
				Available: nativeBalance,
			}
		}
		tokenBalance, err := s.chain.GetTokenBalance(ctx, buyerWallet, s.usdcMint)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
		}
		if tokenBalance < quote.Total() {
			return &domain.InsufficientFundsError{
				Currency:  currency,
				Required:  quote.Total(),
				Available: tokenBalance,
			}
		}
	}
	return nil
}

// SubmitSignature records the wallet's transaction signature and moves the
// purchase into confirmation tracking. Submissions against an expired
// blockhash are rejected outright; the client must start a fresh Buy.
func (s *Service) SubmitSignature(ctx context.Context, userID string, purchaseID string, txSignature string) (*StatusResult, error) {
	purchase, err := s.store.GetPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.UserID != userID {
		return nil, domain.ErrForbidden
	}

	// Idempotent resubmission of the signature already on record
	if purchase.TxSignature != nil && *purchase.TxSignature == txSignature {
		return s.Status(ctx, purchaseID)
	}

	height, err := s.chain.GetBlockHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	if height > purchase.LastValidBlockHeight {
		return nil, domain.ErrBlockhashExpired
	}

	if err := s.store.SubmitPurchaseSignature(ctx, purchaseID, txSignature); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "purchase signature submitted",
		zap.String("purchase_id", purchaseID),
		zap.String("tx_signature", txSignature))

	return s.Status(ctx, purchaseID)
}

// Status returns the current purchase state for polling clients.
func (s *Service) Status(ctx context.Context, purchaseID string) (*StatusResult, error) {
	purchase, err := s.store.GetPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	return &StatusResult{
		PurchaseID:    purchase.ID,
		Status:        purchase.Status,
		TxSignature:   purchase.TxSignature,
		NftMint:       purchase.NftMint,
		EditionNumber: purchase.EditionNumber,
	}, nil
}

// Abandon moves a stale reservation to abandoned. Exposed for operational
// tooling; the sweeper handles the bulk path.
func (s *Service) Abandon(ctx context.Context, purchaseID string, reason string) error {
	ok, err := s.store.MarkPurchaseAbandoned(ctx, purchaseID, reason)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("purchase %s is not abandonable", purchaseID)
	}
	return nil
}
