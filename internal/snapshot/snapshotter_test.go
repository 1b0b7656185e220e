package snapshot_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdecaire/desperse-public-sub004/internal/logger"
	"github.com/cdecaire/desperse-public-sub004/internal/mocks"
	"github.com/cdecaire/desperse-public-sub004/internal/snapshot"
	"github.com/cdecaire/desperse-public-sub004/internal/store"
	"github.com/cdecaire/desperse-public-sub004/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func newSnapshotter(t *testing.T) (*snapshot.Snapshotter, *mocks.MockStore, *mocks.MockHTTPClient, *mocks.MockClock) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	clock := mocks.NewMockClock(ctrl)
	return snapshot.NewSnapshotter(st, httpClient, clock), st, httpClient, clock
}

func TestSnapshotter_Snapshot(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("records metadata on first mint", func(t *testing.T) {
		s, st, httpClient, clock := newSnapshotter(t)
		clock.EXPECT().Now().Return(now)

		st.EXPECT().GetPostByID(gomock.Any(), "post-1").Return(&schema.Post{
			ID:          "post-1",
			MetadataURI: "https://example.com/meta.json",
		}, nil)
		httpClient.EXPECT().
			Get(gomock.Any(), "https://example.com/meta.json", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, result interface{}) error {
				raw := result.(*json.RawMessage)
				*raw = json.RawMessage(`{"name":"Numbered Print"}`)
				return nil
			})
		st.EXPECT().
			SnapshotPostMint(gomock.Any(), "post-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, snap store.MintSnapshot) (bool, error) {
				assert.Equal(t, "mint-tx-sig", snap.TxSignature)
				assert.Equal(t, "https://example.com/meta.json", snap.MetadataURI)
				assert.JSONEq(t, `{"name":"Numbered Print"}`, string(snap.MetadataJSON))
				assert.Equal(t, now, snap.MintedAt)
				return true, nil
			})

		require.NoError(t, s.Snapshot(ctx, "post-1", "mint-tx-sig"))
	})

	t.Run("no-op when the post already has a snapshot", func(t *testing.T) {
		s, st, _, _ := newSnapshotter(t)
		minted := time.Now()
		st.EXPECT().GetPostByID(gomock.Any(), "post-1").Return(&schema.Post{
			ID:       "post-1",
			MintedAt: &minted,
		}, nil)

		require.NoError(t, s.Snapshot(ctx, "post-1", "mint-tx-sig"))
	})

	t.Run("metadata fetch failure still records the snapshot", func(t *testing.T) {
		s, st, httpClient, clock := newSnapshotter(t)
		clock.EXPECT().Now().Return(now)

		st.EXPECT().GetPostByID(gomock.Any(), "post-1").Return(&schema.Post{
			ID:          "post-1",
			MetadataURI: "https://example.com/meta.json",
		}, nil)
		httpClient.EXPECT().
			Get(gomock.Any(), "https://example.com/meta.json", gomock.Any()).
			Return(errors.New("gateway timeout"))
		st.EXPECT().
			SnapshotPostMint(gomock.Any(), "post-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, snap store.MintSnapshot) (bool, error) {
				assert.Nil(t, snap.MetadataJSON)
				return true, nil
			})

		require.NoError(t, s.Snapshot(ctx, "post-1", "mint-tx-sig"))
	})

	t.Run("losing the write race is not an error", func(t *testing.T) {
		s, st, httpClient, clock := newSnapshotter(t)
		clock.EXPECT().Now().Return(now)

		st.EXPECT().GetPostByID(gomock.Any(), "post-1").Return(&schema.Post{
			ID:          "post-1",
			MetadataURI: "https://example.com/meta.json",
		}, nil)
		httpClient.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		st.EXPECT().SnapshotPostMint(gomock.Any(), "post-1", gomock.Any()).Return(false, nil)

		require.NoError(t, s.Snapshot(ctx, "post-1", "mint-tx-sig"))
	})
}
