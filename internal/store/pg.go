package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cdecaire/desperse-public-sub004/internal/domain"
	"github.com/cdecaire/desperse-public-sub004/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the tables owned by the purchase pipeline
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Post{},
		&schema.Purchase{},
		&schema.Collection{},
		&schema.UnlockChallenge{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

func (s *pgStore) GetPostByID(ctx context.Context, postID string) (*schema.Post, error) {
	var post schema.Post
	err := s.db.WithContext(ctx).Where("id = ?", postID).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

func (s *pgStore) CreatePurchase(ctx context.Context, purchase *schema.Purchase) error {
	if err := s.db.WithContext(ctx).Create(purchase).Error; err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

func (s *pgStore) GetPurchaseByID(ctx context.Context, purchaseID string) (*schema.Purchase, error) {
	var purchase schema.Purchase
	err := s.db.WithContext(ctx).Where("id = ?", purchaseID).First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	return &purchase, nil
}

func (s *pgStore) SubmitPurchaseSignature(ctx context.Context, purchaseID string, txSignature string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var purchase schema.Purchase
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", purchaseID).
			First(&purchase).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPurchaseNotFound
			}
			return fmt.Errorf("failed to lock purchase: %w", err)
		}

		// Repeat submissions of the same signature are a no-op
		if purchase.Status != domain.PurchaseReserved {
			if purchase.TxSignature != nil && *purchase.TxSignature == txSignature {
				return nil
			}
			return fmt.Errorf("%w: purchase %s is %s", domain.ErrSignatureConflict, purchaseID, purchase.Status)
		}

		return tx.Model(&schema.Purchase{}).
			Where("id = ?", purchaseID).
			Updates(map[string]interface{}{
				"status":       domain.PurchaseSubmitted,
				"tx_signature": txSignature,
			}).Error
	})
}

func (s *pgStore) MarkPurchaseAwaitingFulfillment(ctx context.Context, purchaseID string) (bool, error) {
	result := s.db.WithContext(ctx).Model(&schema.Purchase{}).
		Where("id = ? AND status = ?", purchaseID, domain.PurchaseSubmitted).
		Update("status", domain.PurchaseAwaitingFulfillment)
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark purchase awaiting fulfillment: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *pgStore) MarkPurchaseFailed(ctx context.Context, purchaseID string, reason string) (bool, error) {
	result := s.db.WithContext(ctx).Model(&schema.Purchase{}).
		Where("id = ? AND status = ?", purchaseID, domain.PurchaseSubmitted).
		Updates(map[string]interface{}{
			"status":         domain.PurchaseFailed,
			"failure_reason": reason,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark purchase failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *pgStore) MarkPurchaseAbandoned(ctx context.Context, purchaseID string, reason string) (bool, error) {
	result := s.db.WithContext(ctx).Model(&schema.Purchase{}).
		Where("id = ? AND status IN ?", purchaseID, []domain.PurchaseStatus{domain.PurchaseReserved, domain.PurchaseSubmitted}).
		Updates(map[string]interface{}{
			"status":         domain.PurchaseAbandoned,
			"failure_reason": reason,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark purchase abandoned: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *pgStore) MarkPurchaseBlockedMissingMaster(ctx context.Context, purchaseID string, reason string) (bool, error) {
	result := s.db.WithContext(ctx).Model(&schema.Purchase{}).
		Where("id = ? AND status = ?", purchaseID, domain.PurchaseMinting).
		Updates(map[string]interface{}{
			"status":         domain.PurchaseBlockedMissingMaster,
			"failure_reason": reason,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark purchase blocked: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ClaimPurchaseFulfillment is the mutual-exclusion gate for minting. The
// WHERE fulfillment_claimed_at IS NULL condition guarantees at most one
// winner no matter how many workers race.
func (s *pgStore) ClaimPurchaseFulfillment(ctx context.Context, purchaseID string, claimKey string, now time.Time) (bool, error) {
	result := s.db.WithContext(ctx).Model(&schema.Purchase{}).
		Where("id = ? AND status = ? AND fulfillment_claimed_at IS NULL", purchaseID, domain.PurchaseAwaitingFulfillment).
		Updates(map[string]interface{}{
			"status":                 domain.PurchaseMinting,
			"fulfillment_key":        claimKey,
			"fulfillment_claimed_at": now,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to claim purchase fulfillment: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *pgStore) ConfirmPurchaseMint(ctx context.Context, purchaseID string, postID string, nftMint string) (uint64, error) {
	var editionNumber uint64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The supply increment is the oversell gate. Read-modify-write would
		// be wrong here under concurrent workers.
		result := tx.Model(&schema.Post{}).
			Where("id = ? AND (max_supply IS NULL OR current_supply < max_supply)", postID).
			Update("current_supply", gorm.Expr("current_supply + 1"))
		if result.Error != nil {
			return fmt.Errorf("failed to increment supply: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrSoldOut
		}

		var post schema.Post
		if err := tx.Select("current_supply").Where("id = ?", postID).First(&post).Error; err != nil {
			return fmt.Errorf("failed to read supply: %w", err)
		}
		editionNumber = post.CurrentSupply

		result = tx.Model(&schema.Purchase{}).
			Where("id = ? AND status = ?", purchaseID, domain.PurchaseMinting).
			Updates(map[string]interface{}{
				"status":         domain.PurchaseConfirmed,
				"nft_mint":       nftMint,
				"edition_number": editionNumber,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to confirm purchase: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("purchase %s is not minting, cannot confirm", purchaseID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return editionNumber, nil
}

func (s *pgStore) ListPurchasesByStatus(ctx context.Context, status domain.PurchaseStatus, limit int) ([]schema.Purchase, error) {
	var purchases []schema.Purchase
	err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&purchases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}

func (s *pgStore) SweepExpiredReservations(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	subquery := s.db.Model(&schema.Purchase{}).
		Select("id").
		Where("status = ? AND created_at < ?", domain.PurchaseReserved, cutoff).
		Order("created_at ASC").
		Limit(limit)

	result := s.db.WithContext(ctx).Model(&schema.Purchase{}).
		Where("id IN (?)", subquery).
		Updates(map[string]interface{}{
			"status":         domain.PurchaseAbandoned,
			"failure_reason": "reservation expired without signature",
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to sweep expired reservations: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *pgStore) ListStaleMintingPurchases(ctx context.Context, cutoff time.Time, limit int) ([]schema.Purchase, error) {
	var purchases []schema.Purchase
	err := s.db.WithContext(ctx).
		Where("status = ? AND fulfillment_claimed_at < ?", domain.PurchaseMinting, cutoff).
		Order("fulfillment_claimed_at ASC").
		Limit(limit).
		Find(&purchases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stale minting purchases: %w", err)
	}
	return purchases, nil
}

func (s *pgStore) HasConfirmedPurchase(ctx context.Context, postID string, wallet string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Purchase{}).
		Where("post_id = ? AND buyer_wallet = ? AND status = ?", postID, wallet, domain.PurchaseConfirmed).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count confirmed purchases: %w", err)
	}
	return count > 0, nil
}

func (s *pgStore) SetPostMasterCreated(ctx context.Context, postID string) (bool, error) {
	result := s.db.WithContext(ctx).Model(&schema.Post{}).
		Where("id = ? AND master_created = false", postID).
		Update("master_created", true)
	if result.Error != nil {
		return false, fmt.Errorf("failed to set master created: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *pgStore) CreateCollection(ctx context.Context, collection *schema.Collection) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}},
		DoNothing: true,
	}).Create(collection).Error
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

func (s *pgStore) GetCollectionByPostID(ctx context.Context, postID string) (*schema.Collection, error) {
	var collection schema.Collection
	err := s.db.WithContext(ctx).Where("post_id = ?", postID).First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCollectionUnresolved
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &collection, nil
}

// SnapshotPostMint only ever writes where minted_at is still null, so a race
// between two callers results in exactly one writer.
func (s *pgStore) SnapshotPostMint(ctx context.Context, postID string, snapshot MintSnapshot) (bool, error) {
	result := s.db.WithContext(ctx).Model(&schema.Post{}).
		Where("id = ? AND minted_at IS NULL", postID).
		Updates(map[string]interface{}{
			"minted_at":            snapshot.MintedAt,
			"minted_tx_signature":  snapshot.TxSignature,
			"minted_metadata_uri":  snapshot.MetadataURI,
			"minted_metadata_json": datatypes.JSON(snapshot.MetadataJSON),
			"minted_is_mutable":    snapshot.IsMutable,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to snapshot post mint: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *pgStore) CreateUnlockChallenge(ctx context.Context, challenge *schema.UnlockChallenge) error {
	if err := s.db.WithContext(ctx).Create(challenge).Error; err != nil {
		return fmt.Errorf("failed to create unlock challenge: %w", err)
	}
	return nil
}

func (s *pgStore) ConsumeUnlockChallenge(ctx context.Context, nonce string, now time.Time) (*schema.UnlockChallenge, error) {
	result := s.db.WithContext(ctx).Model(&schema.UnlockChallenge{}).
		Where("nonce = ? AND used_at IS NULL AND expires_at > ?", nonce, now).
		Update("used_at", now)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to consume unlock challenge: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrChallengeInvalid
	}

	var challenge schema.UnlockChallenge
	if err := s.db.WithContext(ctx).Where("nonce = ?", nonce).First(&challenge).Error; err != nil {
		return nil, fmt.Errorf("failed to load consumed challenge: %w", err)
	}
	return &challenge, nil
}
