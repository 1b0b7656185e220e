package schema

import (
	"time"

	"github.com/cdecaire/desperse-public-sub004/internal/domain"
)

// Purchase represents the purchases table - one purchase attempt for one
// edition by one buyer. Rows are never deleted; they are the audit trail.
type Purchase struct {
	// ID is the opaque purchase identifier handed to the client
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// PostID is the edition post this purchase is for
	PostID string `gorm:"column:post_id;not null;type:uuid;index:idx_purchases_post_status,priority:1"`
	// UserID is the buying user, used for the SubmitSignature ownership check
	UserID string `gorm:"column:user_id;not null;type:text;index"`
	// BuyerWallet is the wallet address that signs and pays
	BuyerWallet string `gorm:"column:buyer_wallet;not null;type:text"`
	// Price is the sale price in the smallest denomination of Currency
	Price uint64 `gorm:"column:price;not null"`
	// Currency is the payment currency (sol or usdc)
	Currency domain.Currency `gorm:"column:currency;not null;type:text"`
	// Status is the purchase lifecycle state
	Status domain.PurchaseStatus `gorm:"column:status;not null;type:text;index:idx_purchases_post_status,priority:2;index:idx_purchases_status"`
	// CreatorAmount and PlatformFee freeze the fee split at reservation time
	CreatorAmount uint64 `gorm:"column:creator_amount;not null"`
	PlatformFee   uint64 `gorm:"column:platform_fee;not null"`
	// Blockhash and LastValidBlockHeight pin the unsigned transaction's
	// validity window. Submissions past the height require a fresh Buy.
	Blockhash            string `gorm:"column:blockhash;not null;type:text"`
	LastValidBlockHeight uint64 `gorm:"column:last_valid_block_height;not null"`
	// TxSignature is set by SubmitSignature once the wallet has broadcast
	TxSignature *string `gorm:"column:tx_signature;type:text;index"`
	// NftMint is the minted edition asset address, set on confirmation
	NftMint *string `gorm:"column:nft_mint;type:text"`
	// FulfillmentKey is an opaque claim token assigned when a worker wins
	// the fulfillment claim
	FulfillmentKey *string `gorm:"column:fulfillment_key;type:uuid"`
	// FulfillmentClaimedAt is the mutual-exclusion gate: it transitions from
	// null exactly once, via a conditional update, so at most one worker
	// ever mints this purchase
	FulfillmentClaimedAt *time.Time `gorm:"column:fulfillment_claimed_at"`
	// EditionNumber is the sequential copy number assigned on confirmation
	EditionNumber *uint64 `gorm:"column:edition_number"`
	// FailureReason records why a purchase reached a terminal failure state
	FailureReason *string   `gorm:"column:failure_reason;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}
