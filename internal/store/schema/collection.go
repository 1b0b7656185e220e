package schema

import (
	"time"
)

// Collection represents the collections table - the on-chain master grouping
// all editions of one post. Created at most once per post.
type Collection struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PostID links back to the post; the unique index is what makes a second
	// insert for the same post fail instead of duplicating the master
	PostID string `gorm:"column:post_id;not null;type:uuid;uniqueIndex"`
	// CollectionAddress is the on-chain address of the master asset
	CollectionAddress string `gorm:"column:collection_address;not null;type:text"`
	// CreatorAddress is the post creator's wallet at creation time
	CreatorAddress string `gorm:"column:creator_address;not null;type:text"`
	// CreationTxSignature is the transaction that created the master
	CreationTxSignature string `gorm:"column:creation_tx_signature;not null;type:text"`
	// MaxSupply snapshots the post's cap when the master was created
	MaxSupply *uint64 `gorm:"column:max_supply"`
	// RoyaltyBasisPoints snapshots the royalty encoded on-chain
	RoyaltyBasisPoints uint16    `gorm:"column:royalty_basis_points;not null;default:0"`
	CreatedAt          time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}
