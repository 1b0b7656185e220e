package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/cdecaire/desperse-public-sub004/internal/adapter"
	"github.com/cdecaire/desperse-public-sub004/internal/domain"
	"github.com/cdecaire/desperse-public-sub004/internal/logger"
	"github.com/cdecaire/desperse-public-sub004/internal/messaging"
	"github.com/cdecaire/desperse-public-sub004/internal/snapshot"
	"github.com/cdecaire/desperse-public-sub004/internal/solana"
	"github.com/cdecaire/desperse-public-sub004/internal/store"
	"github.com/cdecaire/desperse-public-sub004/internal/store/schema"
)

// Config holds worker tuning.
type Config struct {
	PoolSize     int
	QueueSize    int
	PollInterval time.Duration
	BatchSize    int
}

// Worker is the fulfillment loop: it advances submitted purchases through
// confirmation and mints claimed purchases. Workers are stateless; any
// instance may handle any purchase, and all coordination happens through
// conditional updates in the store.
type Worker struct {
	config      *Config
	store       store.Store
	confirmer   *Confirmer
	minter      solana.Minter
	snapshotter *snapshot.Snapshotter
	publisher   messaging.Publisher
	clock       adapter.Clock
	pool        pond.Pool
	running     atomic.Bool
	stopChan    chan struct{}
	stoppedCh   chan struct{}
}

// NewWorker creates a fulfillment worker.
func NewWorker(
	config *Config,
	s store.Store,
	confirmer *Confirmer,
	minter solana.Minter,
	snapshotter *snapshot.Snapshotter,
	publisher messaging.Publisher,
	clock adapter.Clock,
) *Worker {
	return &Worker{
		config:      config,
		store:       s,
		confirmer:   confirmer,
		minter:      minter,
		snapshotter: snapshotter,
		publisher:   publisher,
		clock:       clock,
		stopChan:    make(chan struct{}),
		stoppedCh:   make(chan struct{}),
	}
}

// Name returns the worker's name
func (w *Worker) Name() string {
	return "fulfillment-worker"
}

// Start begins the worker's main loop. This is a blocking call that runs
// until the context is canceled or Stop is called.
func (w *Worker) Start(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return fmt.Errorf("worker already running")
	}
	defer func() {
		w.running.Store(false)
		close(w.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting fulfillment worker",
		zap.Int("pool_size", w.config.PoolSize),
		zap.Duration("poll_interval", w.config.PollInterval))

	w.pool = pond.NewPool(
		w.config.PoolSize,
		pond.WithQueueSize(w.config.QueueSize),
		pond.WithContext(ctx),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Fulfillment worker stopping due to context cancellation", zap.Error(ctx.Err()))
			w.cleanup()
			return nil
		case <-w.stopChan:
			logger.InfoCtx(ctx, "Fulfillment worker stop requested")
			w.cleanup()
			return nil
		default:
			if err := w.runCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

func (w *Worker) cleanup() {
	if w.pool != nil {
		w.pool.StopAndWait()
	}
}

// Stop gracefully stops the worker, waiting for in-flight mints to finish.
func (w *Worker) Stop(ctx context.Context) error {
	if !w.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping fulfillment worker")
	close(w.stopChan)

	select {
	case <-w.stoppedCh:
		logger.InfoCtx(ctx, "Fulfillment worker stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Fulfillment worker stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runCycle advances submitted purchases through confirmation, then fulfills
// everything awaiting fulfillment. Sleeps when there is no work.
func (w *Worker) runCycle(ctx context.Context) error {
	submitted, err := w.store.ListPurchasesByStatus(ctx, domain.PurchaseSubmitted, w.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list submitted purchases: %w", err)
	}
	for _, purchase := range submitted {
		p := purchase
		w.pool.Submit(func() {
			if err := w.confirmer.Process(ctx, &p); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("purchase_id", p.ID))
			}
		})
	}

	awaiting, err := w.store.ListPurchasesByStatus(ctx, domain.PurchaseAwaitingFulfillment, w.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list purchases awaiting fulfillment: %w", err)
	}
	for _, purchase := range awaiting {
		p := purchase
		w.pool.Submit(func() {
			if err := w.Fulfill(ctx, &p); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("purchase_id", p.ID))
			}
		})
	}

	w.pool.StopAndWait()
	w.pool = pond.NewPool(
		w.config.PoolSize,
		pond.WithQueueSize(w.config.QueueSize),
		pond.WithContext(ctx),
	)

	if len(submitted) == 0 && len(awaiting) == 0 {
		if !w.sleep(ctx, w.config.PollInterval) {
			return ctx.Err()
		}
	}
	return nil
}

// sleep waits for d, returning false if interrupted by context cancellation
// or stop request.
func (w *Worker) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-w.clock.After(d):
		return true
	case <-ctx.Done():
		return false
	case <-w.stopChan:
		return false
	}
}

// Fulfill runs the mint claim protocol for one purchase. Losing the claim
// race means another worker owns this purchase and is not an error.
func (w *Worker) Fulfill(ctx context.Context, purchase *schema.Purchase) error {
	claimKey := uuid.NewString()
	claimed, err := w.store.ClaimPurchaseFulfillment(ctx, purchase.ID, claimKey, w.clock.Now())
	if err != nil {
		return fmt.Errorf("failed to claim purchase: %w", err)
	}
	if !claimed {
		return nil
	}

	logger.InfoCtx(ctx, "claimed purchase for fulfillment",
		zap.String("purchase_id", purchase.ID),
		zap.String("claim_key", claimKey))

	post, err := w.store.GetPostByID(ctx, purchase.PostID)
	if err != nil {
		return err
	}

	// First sale of the post creates the on-chain master. The master_created
	// gate is taken BEFORE the on-chain write: collection creation is paid
	// and irreversible, so the single creator must be selected first. Losing
	// the gate means another worker is creating the master right now; the
	// wait below picks up its record. Failure after winning the gate is
	// terminal for the purchase: the buyer has paid but no asset exists,
	// which is a reconciliation case, never a silent retry.
	if !post.MasterCreated {
		won, err := w.store.SetPostMasterCreated(ctx, post.ID)
		if err != nil {
			return err
		}
		if won {
			if err := w.createMaster(ctx, purchase, post); err != nil {
				return err
			}
		}
	}

	collection, err := w.waitForCollection(ctx, purchase.PostID)
	if err != nil {
		return w.block(ctx, purchase, fmt.Sprintf("collection record missing: %v", err))
	}
	if err := w.minter.ResolveCollection(ctx, collection.CollectionAddress); err != nil {
		return w.block(ctx, purchase, fmt.Sprintf("collection unresolved on-chain: %v", err))
	}

	// The edition number recorded on the purchase is assigned atomically by
	// the supply increment below; this one only feeds the asset name.
	displayNumber := post.CurrentSupply + 1

	mintAddr, txSig, err := w.minter.CreateEditionAsset(ctx, solana.EditionParams{
		Name:                 post.Title,
		Symbol:               "DSP",
		MetadataURI:          post.MetadataURI,
		OwnerWallet:          purchase.BuyerWallet,
		CollectionAddress:    collection.CollectionAddress,
		SellerFeeBasisPoints: post.RoyaltyBasisPoints,
		EditionNumber:        displayNumber,
	})
	if err != nil {
		return w.block(ctx, purchase, fmt.Sprintf("edition mint failed: %v", err))
	}

	editionNumber, err := w.store.ConfirmPurchaseMint(ctx, purchase.ID, purchase.PostID, mintAddr)
	if err != nil {
		// The asset exists on-chain but the row could not be confirmed.
		// Surface loudly: this needs manual reconciliation.
		logger.ErrorCtx(ctx, fmt.Errorf("CRITICAL: minted %s but failed to confirm purchase: %w", mintAddr, err),
			zap.String("purchase_id", purchase.ID),
			zap.String("nft_mint", mintAddr),
			zap.String("mint_tx_signature", txSig))
		return err
	}

	logger.InfoCtx(ctx, "edition minted",
		zap.String("purchase_id", purchase.ID),
		zap.String("nft_mint", mintAddr),
		zap.Uint64("edition_number", editionNumber))

	if err := w.snapshotter.Snapshot(ctx, purchase.PostID, txSig); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("post_id", purchase.PostID))
	}

	w.publishConfirmed(ctx, purchase, mintAddr, editionNumber)
	return nil
}

// createMaster creates the on-chain collection for the post's first sale and
// records it. The caller must hold the master_created gate.
func (w *Worker) createMaster(ctx context.Context, purchase *schema.Purchase, post *schema.Post) error {
	address, txSig, err := w.minter.CreateCollection(ctx, solana.CollectionParams{
		Name:                 post.Title,
		Symbol:               "DSP",
		MetadataURI:          post.MetadataURI,
		CreatorAddress:       post.CreatorWallet,
		SellerFeeBasisPoints: post.RoyaltyBasisPoints,
	})
	if err != nil {
		return w.block(ctx, purchase, fmt.Sprintf("collection creation failed: %v", err))
	}

	if err := w.store.CreateCollection(ctx, &schema.Collection{
		PostID:              post.ID,
		CollectionAddress:   address,
		CreatorAddress:      post.CreatorWallet,
		CreationTxSignature: txSig,
		MaxSupply:           post.MaxSupply,
		RoyaltyBasisPoints:  post.RoyaltyBasisPoints,
	}); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "collection master created",
		zap.String("post_id", post.ID),
		zap.String("collection_address", address))
	return nil
}

// waitForCollection reads the post's collection record, waiting out the gap
// between another worker winning the master_created gate and its record
// landing. Only the record-not-there-yet case retries.
func (w *Worker) waitForCollection(ctx context.Context, postID string) (*schema.Collection, error) {
	var collection *schema.Collection

	operation := func() error {
		var err error
		collection, err = w.store.GetCollectionByPostID(ctx, postID)
		if err != nil {
			if errors.Is(err, domain.ErrCollectionUnresolved) {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 8 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, 9), ctx)); err != nil {
		return nil, err
	}
	return collection, nil
}

// block moves the purchase into the terminal blocked_missing_master state.
func (w *Worker) block(ctx context.Context, purchase *schema.Purchase, reason string) error {
	blocked, err := w.store.MarkPurchaseBlockedMissingMaster(ctx, purchase.ID, reason)
	if err != nil {
		return err
	}
	if blocked {
		logger.ErrorCtx(ctx, fmt.Errorf("purchase blocked, needs reconciliation: %s", reason),
			zap.String("purchase_id", purchase.ID))
		w.publishStatus(ctx, purchase, domain.PurchaseBlockedMissingMaster)
	}
	return fmt.Errorf("purchase %s blocked: %s", purchase.ID, reason)
}

func (w *Worker) publishConfirmed(ctx context.Context, purchase *schema.Purchase, mintAddr string, editionNumber uint64) {
	event := &messaging.PurchaseEvent{
		EventID:       ulid.Make().String(),
		PurchaseID:    purchase.ID,
		PostID:        purchase.PostID,
		Status:        domain.PurchaseConfirmed,
		TxSignature:   purchase.TxSignature,
		NftMint:       &mintAddr,
		EditionNumber: &editionNumber,
		OccurredAt:    w.clock.Now(),
	}
	if err := w.publisher.PublishPurchaseEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("purchase_id", purchase.ID))
	}
}

func (w *Worker) publishStatus(ctx context.Context, purchase *schema.Purchase, status domain.PurchaseStatus) {
	event := &messaging.PurchaseEvent{
		EventID:    ulid.Make().String(),
		PurchaseID: purchase.ID,
		PostID:     purchase.PostID,
		Status:     status,
		OccurredAt: w.clock.Now(),
	}
	if err := w.publisher.PublishPurchaseEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("purchase_id", purchase.ID))
	}
}
