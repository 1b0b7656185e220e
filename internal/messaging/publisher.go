// Package messaging publishes purchase lifecycle events for downstream
// consumers (notifications, feeds, reconciliation tooling).
package messaging

import (
	"context"
	"time"

	"github.com/cdecaire/desperse-public-sub004/internal/domain"
)

// PurchaseEvent is emitted on every externally meaningful purchase
// transition. EventID is unique per emission, so consumers can dedupe.
type PurchaseEvent struct {
	EventID       string                `json:"event_id"`
	PurchaseID    string                `json:"purchase_id"`
	PostID        string                `json:"post_id"`
	Status        domain.PurchaseStatus `json:"status"`
	TxSignature   *string               `json:"tx_signature,omitempty"`
	NftMint       *string               `json:"nft_mint,omitempty"`
	EditionNumber *uint64               `json:"edition_number,omitempty"`
	OccurredAt    time.Time             `json:"occurred_at"`
}

// Publisher defines the interface for publishing purchase events
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishPurchaseEvent publishes a purchase lifecycle event
	PublishPurchaseEvent(ctx context.Context, event *PurchaseEvent) error

	// Close closes the underlying connection
	Close()
}
