// Package fulfillment turns confirmed payments into minted editions.
package fulfillment

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/cdecaire/desperse-public-sub004/internal/adapter"
	"github.com/cdecaire/desperse-public-sub004/internal/domain"
	"github.com/cdecaire/desperse-public-sub004/internal/logger"
	"github.com/cdecaire/desperse-public-sub004/internal/messaging"
	"github.com/cdecaire/desperse-public-sub004/internal/solana"
	"github.com/cdecaire/desperse-public-sub004/internal/store"
	"github.com/cdecaire/desperse-public-sub004/internal/store/schema"
)

// Confirmer watches submitted purchases for on-chain settlement and advances
// them into fulfillment. All of its transitions are conditional updates, so
// duplicate confirmation events across worker instances are harmless.
type Confirmer struct {
	store      store.Store
	chain      solana.ChainClient
	publisher  messaging.Publisher
	clock      adapter.Clock
	waitBudget time.Duration
}

// NewConfirmer creates a Confirmer. waitBudget bounds how long a submitted
// purchase may sit unconfirmed before it is abandoned.
func NewConfirmer(s store.Store, chain solana.ChainClient, publisher messaging.Publisher, clock adapter.Clock, waitBudget time.Duration) *Confirmer {
	return &Confirmer{
		store:      s,
		chain:      chain,
		publisher:  publisher,
		clock:      clock,
		waitBudget: waitBudget,
	}
}

// Process inspects one submitted purchase and applies the matching
// transition. Pending purchases inside the wait budget are left alone.
func (c *Confirmer) Process(ctx context.Context, purchase *schema.Purchase) error {
	if purchase.TxSignature == nil {
		// Should not happen for submitted purchases; skip rather than fail the cycle
		logger.WarnCtx(ctx, "submitted purchase has no signature", zap.String("purchase_id", purchase.ID))
		return nil
	}

	status, err := c.chain.GetSignatureStatus(ctx, *purchase.TxSignature)
	if err != nil {
		return err
	}

	switch status {
	case solana.TxConfirmed:
		advanced, err := c.store.MarkPurchaseAwaitingFulfillment(ctx, purchase.ID)
		if err != nil {
			return err
		}
		if advanced {
			logger.InfoCtx(ctx, "payment confirmed on-chain",
				zap.String("purchase_id", purchase.ID),
				zap.String("tx_signature", *purchase.TxSignature))
			c.publish(ctx, purchase, domain.PurchaseAwaitingFulfillment)
		}
	case solana.TxFailed:
		failed, err := c.store.MarkPurchaseFailed(ctx, purchase.ID, "transaction failed on-chain")
		if err != nil {
			return err
		}
		if failed {
			logger.InfoCtx(ctx, "payment failed on-chain",
				zap.String("purchase_id", purchase.ID),
				zap.String("tx_signature", *purchase.TxSignature))
			c.publish(ctx, purchase, domain.PurchaseFailed)
		}
	case solana.TxPending:
		if c.clock.Since(purchase.UpdatedAt) > c.waitBudget {
			abandoned, err := c.store.MarkPurchaseAbandoned(ctx, purchase.ID, "confirmation wait budget exceeded")
			if err != nil {
				return err
			}
			if abandoned {
				logger.WarnCtx(ctx, "purchase abandoned, confirmation never arrived",
					zap.String("purchase_id", purchase.ID),
					zap.Duration("wait_budget", c.waitBudget))
				c.publish(ctx, purchase, domain.PurchaseAbandoned)
			}
		}
	}
	return nil
}

// publish emits a lifecycle event. Publishing is best-effort: the store is
// the source of truth and consumers can always re-read it.
func (c *Confirmer) publish(ctx context.Context, purchase *schema.Purchase, status domain.PurchaseStatus) {
	event := &messaging.PurchaseEvent{
		EventID:     ulid.Make().String(),
		PurchaseID:  purchase.ID,
		PostID:      purchase.PostID,
		Status:      status,
		TxSignature: purchase.TxSignature,
		OccurredAt:  c.clock.Now(),
	}
	if err := c.publisher.PublishPurchaseEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("purchase_id", purchase.ID))
	}
}
