// Package snapshot freezes a post's asset metadata on its first confirmed mint.
package snapshot

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/cdecaire/desperse-public-sub004/internal/adapter"
	"github.com/cdecaire/desperse-public-sub004/internal/logger"
	"github.com/cdecaire/desperse-public-sub004/internal/store"
)

// Snapshotter captures the minted metadata onto the post, write-once.
type Snapshotter struct {
	store store.Store
	http  adapter.HTTPClient
	clock adapter.Clock
}

// NewSnapshotter creates a Snapshotter.
func NewSnapshotter(s store.Store, httpClient adapter.HTTPClient, clock adapter.Clock) *Snapshotter {
	return &Snapshotter{store: s, http: httpClient, clock: clock}
}

// Snapshot freezes the post's metadata. It is a no-op when a snapshot
// already exists, and safe under concurrent callers: the conditional update
// in the store ensures exactly one writer. Fetching the metadata JSON is
// best-effort; a fetch failure records a null JSON rather than blocking the
// snapshot.
func (s *Snapshotter) Snapshot(ctx context.Context, postID string, txSignature string) error {
	post, err := s.store.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.MintedAt != nil {
		return nil
	}

	var metadataJSON []byte
	var raw json.RawMessage
	if err := s.http.Get(ctx, post.MetadataURI, &raw); err != nil {
		logger.WarnCtx(ctx, "failed to fetch metadata for snapshot, recording null JSON",
			zap.String("post_id", postID),
			zap.String("metadata_uri", post.MetadataURI),
			zap.Error(err))
	} else {
		metadataJSON = raw
	}

	wrote, err := s.store.SnapshotPostMint(ctx, postID, store.MintSnapshot{
		TxSignature:  txSignature,
		MetadataURI:  post.MetadataURI,
		MetadataJSON: metadataJSON,
		IsMutable:    true,
		MintedAt:     s.clock.Now(),
	})
	if err != nil {
		return err
	}
	if wrote {
		logger.InfoCtx(ctx, "post mint snapshot recorded",
			zap.String("post_id", postID),
			zap.String("tx_signature", txSignature))
	}
	return nil
}
