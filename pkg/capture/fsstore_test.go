package capture_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bwh/core-api/pkg/capture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *capture.FSStore {
	t.Helper()
	store, err := capture.NewFSStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func sampleRecord(provider, path string) capture.CaptureRecord {
	return capture.NewRecord("POST", "http://localhost"+path, path, map[string]string{"x-test": "1"}, nil, []byte(`{}`), "application/json")
}

func TestFSStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("github", "/webhooks/github")
	saved, err := store.Save(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, saved.Capture.ID)

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.Capture.ID)
	assert.Equal(t, rec.Path, got.Capture.Path)
}

func TestFSStore_Get_ByPrefix(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("github", "/webhooks/github")
	_, err := store.Save(ctx, rec)
	require.NoError(t, err)

	got, err := store.Get(ctx, rec.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.Capture.ID)
}

func TestFSStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, capture.ErrNotFound)
}

func TestFSStore_List_OrdersNewestFirstAndRespectsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec := sampleRecord("github", "/webhooks/github")
		rec.Timestamp = time.Date(2026, 7, 30, 10, 0, i, 0, time.UTC)
		_, err := store.Save(ctx, rec)
		require.NoError(t, err)
	}

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Capture.Timestamp.After(all[1].Capture.Timestamp))
	assert.True(t, all[1].Capture.Timestamp.After(all[2].Capture.Timestamp))

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestFSStore_Search_MatchesPathProviderAndMethod(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	gh := sampleRecord("github", "/webhooks/github")
	gh.Provider = "github"
	_, err := store.Save(ctx, gh)
	require.NoError(t, err)

	stripe := sampleRecord("stripe", "/webhooks/stripe")
	stripe.Provider = "stripe"
	_, err = store.Save(ctx, stripe)
	require.NoError(t, err)

	results, err := store.Search(ctx, "stripe")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "stripe", results[0].Capture.Provider)
}

func TestFSStore_Search_EmptyQueryReturnsAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, sampleRecord("github", "/a"))
	require.NoError(t, err)
	_, err = store.Save(ctx, sampleRecord("stripe", "/b"))
	require.NoError(t, err)

	results, err := store.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestFSStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("github", "/webhooks/github")
	_, err := store.Save(ctx, rec)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, rec.ID))

	_, err = store.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, capture.ErrNotFound)
}

func TestFSStore_DeleteAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, sampleRecord("github", "/a"))
	require.NoError(t, err)
	_, err = store.Save(ctx, sampleRecord("stripe", "/b"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteAll(ctx))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFSStore_Save_WritesNoLeftoverTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := capture.NewFSStore(dir)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), sampleRecord("github", "/a"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))
	assert.False(t, strings.HasPrefix(entries[0].Name(), ".tmp-"), "temp file should have been renamed away")
}

func TestFSStore_Subscribe_NotifiesOnSave(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var notified capture.CaptureFile
	unsubscribe := store.Subscribe(func(cf capture.CaptureFile) { notified = cf })
	defer unsubscribe()

	rec := sampleRecord("github", "/webhooks/github")
	_, err := store.Save(ctx, rec)
	require.NoError(t, err)

	assert.Equal(t, rec.ID, notified.Capture.ID)
}

func TestFSStore_Subscribe_UnsubscribeStopsNotifications(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	calls := 0
	unsubscribe := store.Subscribe(func(capture.CaptureFile) { calls++ })
	unsubscribe()

	_, err := store.Save(ctx, sampleRecord("github", "/a"))
	require.NoError(t, err)

	assert.Equal(t, 0, calls)
}

func TestFSStore_Subscribe_PanickingSubscriberDoesNotBreakSave(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Subscribe(func(capture.CaptureFile) { panic("boom") })

	assert.NotPanics(t, func() {
		_, err := store.Save(ctx, sampleRecord("github", "/a"))
		require.NoError(t, err)
	})
}
