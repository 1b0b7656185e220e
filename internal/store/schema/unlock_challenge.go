package schema

import (
	"time"
)

// UnlockChallenge represents the unlock_challenges table - one single-use
// nonce issued for the gated-download flow. UsedAt transitions from null at
// most once, so a nonce can never authorize two downloads.
type UnlockChallenge struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Nonce is the random challenge value embedded in the signed message
	Nonce string `gorm:"column:nonce;not null;uniqueIndex;type:text"`
	// PostID is the gated post the challenge unlocks
	PostID string `gorm:"column:post_id;not null;type:uuid;index"`
	// Wallet is the wallet that must sign the challenge
	Wallet string `gorm:"column:wallet;not null;type:text"`
	// ExpiresAt bounds how long the nonce is redeemable
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	// UsedAt is set when the nonce is redeemed, via a conditional update
	UsedAt    *time.Time `gorm:"column:used_at"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the UnlockChallenge model
func (UnlockChallenge) TableName() string {
	return "unlock_challenges"
}
