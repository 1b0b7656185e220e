// Package unlock implements the gated-download flow: a wallet proves
// ownership of a confirmed edition by signing a single-use challenge.
package unlock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gowebpki/jcs"
	"go.uber.org/zap"

	"github.com/cdecaire/desperse-public-sub004/internal/adapter"
	"github.com/cdecaire/desperse-public-sub004/internal/domain"
	"github.com/cdecaire/desperse-public-sub004/internal/logger"
	"github.com/cdecaire/desperse-public-sub004/internal/solana"
	"github.com/cdecaire/desperse-public-sub004/internal/store"
	"github.com/cdecaire/desperse-public-sub004/internal/store/schema"
)

// signingDomain namespaces unlock messages so a signature can never be
// replayed against another flow.
const signingDomain = "desperse.unlock"

// Challenge is handed to the client to sign with their wallet.
type Challenge struct {
	Nonce     string
	Message   string
	ExpiresAt time.Time
}

// Service issues and redeems unlock challenges.
type Service struct {
	store store.Store
	clock adapter.Clock
	ttl   time.Duration
}

// NewService creates an unlock service. ttl bounds how long an issued
// challenge stays redeemable.
func NewService(s store.Store, clock adapter.Clock, ttl time.Duration) *Service {
	return &Service{store: s, clock: clock, ttl: ttl}
}

// CreateChallenge issues a fresh single-use nonce for wallet to unlock
// postID. The returned Message is exactly the bytes the wallet must sign.
func (s *Service) CreateChallenge(ctx context.Context, postID string, wallet string) (*Challenge, error) {
	if !solana.ValidateAddress(wallet) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, wallet)
	}
	if _, err := s.store.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	nonce := uuid.NewString()
	expiresAt := s.clock.Now().Add(s.ttl).UTC().Truncate(time.Second)

	message, err := canonicalMessage(postID, wallet, nonce, expiresAt)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateUnlockChallenge(ctx, &schema.UnlockChallenge{
		Nonce:     nonce,
		PostID:    postID,
		Wallet:    wallet,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}

	return &Challenge{
		Nonce:     nonce,
		Message:   string(message),
		ExpiresAt: expiresAt,
	}, nil
}

// Redeem consumes the nonce and verifies the wallet's signature over the
// canonical message. A nonce can only ever be redeemed once; expired,
// reused or unknown nonces fail with ErrChallengeInvalid. The wallet must
// hold a confirmed purchase of the post.
func (s *Service) Redeem(ctx context.Context, nonce string, signatureBase58 string) (*schema.UnlockChallenge, error) {
	challenge, err := s.store.ConsumeUnlockChallenge(ctx, nonce, s.clock.Now())
	if err != nil {
		return nil, err
	}

	message, err := canonicalMessage(challenge.PostID, challenge.Wallet, challenge.Nonce, challenge.ExpiresAt.UTC().Truncate(time.Second))
	if err != nil {
		return nil, err
	}
	if !solana.VerifyWalletSignature(challenge.Wallet, message, signatureBase58) {
		return nil, domain.ErrSignatureInvalid
	}

	owns, err := s.store.HasConfirmedPurchase(ctx, challenge.PostID, challenge.Wallet)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, domain.ErrNoConfirmedPurchase
	}

	logger.InfoCtx(ctx, "unlock challenge redeemed",
		zap.String("post_id", challenge.PostID),
		zap.String("wallet", challenge.Wallet))

	return challenge, nil
}

// canonicalMessage builds the JCS-canonicalized signing payload. Canonical
// form means the server and any client library serializing the same fields
// agree byte-for-byte on what was signed.
func canonicalMessage(postID, wallet, nonce string, expiresAt time.Time) ([]byte, error) {
	raw, err := json.Marshal(map[string]interface{}{
		"domain":     signingDomain,
		"post_id":    postID,
		"wallet":     wallet,
		"nonce":      nonce,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal unlock message: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize unlock message: %w", err)
	}
	return canonical, nil
}
