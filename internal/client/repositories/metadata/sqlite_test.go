package metadata_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsemenov/dosetrack/internal/client/repositories/metadata"
	"github.com/dsemenov/dosetrack/internal/client/storage"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) metadata.Repository {
	t.Helper()
	store, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.Metadata
}

func TestGet_AbsentKeyReturnsEmpty(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	value, err := repo.Get(ctx, "no-such-key")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestSetAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, metadata.KeyLastSyncCursor, "2024-01-10T00:00:00.000Z"))

	value, err := repo.Get(ctx, metadata.KeyLastSyncCursor)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10T00:00:00.000Z", value)
}

func TestSet_OverwritesExisting(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, metadata.KeyAuthToken, "old"))
	require.NoError(t, repo.Set(ctx, metadata.KeyAuthToken, "new"))

	value, err := repo.Get(ctx, metadata.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "new", value)
}

func TestDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, metadata.KeyAuthToken, "token"))
	require.NoError(t, repo.Delete(ctx, metadata.KeyAuthToken))

	value, err := repo.Get(ctx, metadata.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "", value)

	// Deleting an absent key is a no-op.
	require.NoError(t, repo.Delete(ctx, metadata.KeyAuthToken))
}
