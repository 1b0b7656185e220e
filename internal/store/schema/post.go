package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Post represents the posts table (edition view) - the content item whose
// copies are sold. Only the fields the purchase pipeline reads and writes
// live here; the social surface owns the rest of the row.
type Post struct {
	// ID is the post identifier
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// UserID is the creating user
	UserID string `gorm:"column:user_id;not null;type:text"`
	// Title names the edition; used for on-chain asset names
	Title string `gorm:"column:title;not null;type:text"`
	// IsEdition marks posts that are sellable editions
	IsEdition bool `gorm:"column:is_edition;not null;default:false"`
	// Price is the sale price in the smallest denomination of Currency
	Price uint64 `gorm:"column:price;not null;default:0"`
	// Currency is the sale currency (sol or usdc)
	Currency string `gorm:"column:currency;not null;type:text;default:'sol'"`
	// CreatorWallet receives the creator amount of every sale
	CreatorWallet string `gorm:"column:creator_wallet;not null;type:text"`
	// MaxSupply is the edition cap; null means unlimited
	MaxSupply *uint64 `gorm:"column:max_supply"`
	// CurrentSupply counts confirmed mints. Monotonically non-decreasing and
	// only ever incremented through a conditional update that enforces
	// current_supply < max_supply.
	CurrentSupply uint64 `gorm:"column:current_supply;not null;default:0"`
	// RoyaltyBasisPoints is the resale royalty encoded into minted assets
	RoyaltyBasisPoints uint16 `gorm:"column:royalty_basis_points;not null;default:0"`
	// MetadataURI points at the asset metadata JSON in object storage
	MetadataURI string `gorm:"column:metadata_uri;not null;type:text"`
	// MasterCreated is the write-once gate for on-chain collection creation
	MasterCreated bool `gorm:"column:master_created;not null;default:false"`

	// Minted snapshot fields, write-once as a group. MintedAt transitions
	// from null at most once; the others ride on the same conditional update.
	MintedAt            *time.Time     `gorm:"column:minted_at"`
	MintedTxSignature   *string        `gorm:"column:minted_tx_signature;type:text"`
	MintedMetadataURI   *string        `gorm:"column:minted_metadata_uri;type:text"`
	MintedMetadataJSON  datatypes.JSON `gorm:"column:minted_metadata_json;type:jsonb"`
	MintedIsMutable     *bool          `gorm:"column:minted_is_mutable"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Post model
func (Post) TableName() string {
	return "posts"
}

// SoldOut reports whether the edition has reached its supply cap. A nil
// MaxSupply means unlimited.
func (p *Post) SoldOut() bool {
	return p.MaxSupply != nil && p.CurrentSupply >= *p.MaxSupply
}
