package replay_test

import (
	"context"
	"testing"
	"time"

	"bwh/core-api/pkg/webhook/replay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Reserve_FirstTimeSucceeds(t *testing.T) {
	s := replay.NewMemoryStore()

	result, err := s.Reserve(context.Background(), "key-1", time.Minute)

	require.NoError(t, err)
	assert.Equal(t, replay.Reserved, result)
}

func TestMemoryStore_Reserve_DuplicateWhileInFlight(t *testing.T) {
	s := replay.NewMemoryStore()
	ctx := context.Background()

	_, err := s.Reserve(ctx, "key-1", time.Minute)
	require.NoError(t, err)

	result, err := s.Reserve(ctx, "key-1", time.Minute)

	require.NoError(t, err)
	assert.Equal(t, replay.Duplicate, result)
}

func TestMemoryStore_Reserve_InvalidTTL(t *testing.T) {
	s := replay.NewMemoryStore()

	_, err := s.Reserve(context.Background(), "key-1", 0)

	assert.ErrorIs(t, err, replay.ErrInvalidTTL)
}

func TestMemoryStore_Reserve_AllowsAfterExpiry(t *testing.T) {
	s := replay.NewMemoryStore(replay.WithCleanupInterval(0))
	ctx := context.Background()

	_, err := s.Reserve(ctx, "key-1", time.Millisecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	result, err := s.Reserve(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, replay.Reserved, result)
}

func TestMemoryStore_Commit_ExtendsTTLAndBlocksReReservation(t *testing.T) {
	s := replay.NewMemoryStore()
	ctx := context.Background()

	_, err := s.Reserve(ctx, "key-1", time.Millisecond)
	require.NoError(t, err)

	err = s.Commit(ctx, "key-1", time.Minute)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	result, err := s.Reserve(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, replay.Duplicate, result, "committed entry should still block reservation")
}

func TestMemoryStore_Commit_InvalidTTL(t *testing.T) {
	s := replay.NewMemoryStore()

	err := s.Commit(context.Background(), "key-1", -time.Second)

	assert.ErrorIs(t, err, replay.ErrInvalidTTL)
}

func TestMemoryStore_Release_AllowsImmediateReReservation(t *testing.T) {
	s := replay.NewMemoryStore()
	ctx := context.Background()

	_, err := s.Reserve(ctx, "key-1", time.Minute)
	require.NoError(t, err)

	err = s.Release(ctx, "key-1")
	require.NoError(t, err)

	result, err := s.Reserve(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, replay.Reserved, result)
}

func TestMemoryStore_EvictsOldestWhenOverCapacity(t *testing.T) {
	s := replay.NewMemoryStore(replay.WithMaxEntries(2))
	ctx := context.Background()

	_, err := s.Reserve(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	_, err = s.Reserve(ctx, "key-2", 2*time.Minute)
	require.NoError(t, err)
	_, err = s.Reserve(ctx, "key-3", 3*time.Minute)
	require.NoError(t, err)

	// key-1 had the soonest expiry and should have been evicted, freeing
	// its slot for reservation again.
	result, err := s.Reserve(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, replay.Reserved, result)
}
