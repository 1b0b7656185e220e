package store

import (
	"context"
	"time"

	"github.com/cdecaire/desperse-public-sub004/internal/domain"
	"github.com/cdecaire/desperse-public-sub004/internal/store/schema"
)

// Store defines the interface for database operations. Every write that
// coordinates concurrent workers is a conditional update; callers learn
// whether they won the race from the boolean result, never from reading
// state back.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetPostByID retrieves a post by its ID
	GetPostByID(ctx context.Context, postID string) (*schema.Post, error)

	// CreatePurchase inserts a new reserved purchase row
	CreatePurchase(ctx context.Context, purchase *schema.Purchase) error
	// GetPurchaseByID retrieves a purchase by its ID
	GetPurchaseByID(ctx context.Context, purchaseID string) (*schema.Purchase, error)
	// SubmitPurchaseSignature transitions reserved -> submitted. Repeat calls
	// with the same signature succeed without mutating anything.
	SubmitPurchaseSignature(ctx context.Context, purchaseID string, txSignature string) error
	// MarkPurchaseAwaitingFulfillment transitions submitted -> awaiting_fulfillment.
	// Returns false when the purchase was not in submitted, which makes
	// duplicate confirmation events harmless.
	MarkPurchaseAwaitingFulfillment(ctx context.Context, purchaseID string) (bool, error)
	// MarkPurchaseFailed transitions submitted -> failed
	MarkPurchaseFailed(ctx context.Context, purchaseID string, reason string) (bool, error)
	// MarkPurchaseAbandoned transitions reserved or submitted -> abandoned
	MarkPurchaseAbandoned(ctx context.Context, purchaseID string, reason string) (bool, error)
	// MarkPurchaseBlockedMissingMaster transitions minting -> blocked_missing_master,
	// the terminal state requiring manual reconciliation
	MarkPurchaseBlockedMissingMaster(ctx context.Context, purchaseID string, reason string) (bool, error)
	// ClaimPurchaseFulfillment atomically claims an awaiting_fulfillment
	// purchase for minting. At most one caller ever gets true for a given
	// purchase; losing the race is not an error.
	ClaimPurchaseFulfillment(ctx context.Context, purchaseID string, claimKey string, now time.Time) (bool, error)
	// ConfirmPurchaseMint atomically increments the post's supply and marks
	// the purchase confirmed, returning the assigned edition number. Fails
	// with ErrSoldOut if the supply cap has been reached.
	ConfirmPurchaseMint(ctx context.Context, purchaseID string, postID string, nftMint string) (uint64, error)
	// ListPurchasesByStatus returns up to limit purchases in the given
	// status, oldest first
	ListPurchasesByStatus(ctx context.Context, status domain.PurchaseStatus, limit int) ([]schema.Purchase, error)
	// SweepExpiredReservations abandons reserved purchases created before
	// cutoff, returning how many rows were reaped
	SweepExpiredReservations(ctx context.Context, cutoff time.Time, limit int) (int64, error)
	// ListStaleMintingPurchases returns up to limit purchases stuck in
	// minting whose fulfillment claim predates cutoff, oldest claim first
	ListStaleMintingPurchases(ctx context.Context, cutoff time.Time, limit int) ([]schema.Purchase, error)
	// HasConfirmedPurchase reports whether wallet holds a confirmed purchase
	// of the post
	HasConfirmedPurchase(ctx context.Context, postID string, wallet string) (bool, error)

	// SetPostMasterCreated flips the write-once master_created gate.
	// Returns false when the gate was already set.
	SetPostMasterCreated(ctx context.Context, postID string) (bool, error)
	// CreateCollection records the on-chain master for a post
	CreateCollection(ctx context.Context, collection *schema.Collection) error
	// GetCollectionByPostID retrieves the collection record for a post
	GetCollectionByPostID(ctx context.Context, postID string) (*schema.Collection, error)
	// SnapshotPostMint freezes the minted metadata onto the post, write-once.
	// Returns false when a snapshot already exists.
	SnapshotPostMint(ctx context.Context, postID string, snapshot MintSnapshot) (bool, error)

	// CreateUnlockChallenge stores a fresh single-use nonce
	CreateUnlockChallenge(ctx context.Context, challenge *schema.UnlockChallenge) error
	// ConsumeUnlockChallenge redeems a nonce exactly once. Expired, unknown
	// or already-used nonces fail with ErrChallengeInvalid.
	ConsumeUnlockChallenge(ctx context.Context, nonce string, now time.Time) (*schema.UnlockChallenge, error)
}

// MintSnapshot is the write-once metadata capture recorded on a post's
// first confirmed mint.
type MintSnapshot struct {
	TxSignature  string
	MetadataURI  string
	MetadataJSON []byte
	IsMutable    bool
	MintedAt     time.Time
}
