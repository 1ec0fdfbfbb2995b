package rows_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsemenov/dosetrack/internal/client/storage"
	"github.com/dsemenov/dosetrack/internal/common"
	"github.com/dsemenov/dosetrack/internal/schema"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func weightLogs(t *testing.T) *schema.Descriptor {
	t.Helper()
	d, err := schema.Lookup(string(schema.TableWeightLogs))
	require.NoError(t, err)
	return d
}

func TestInsertAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	d := weightLogs(t)

	values := map[string]any{
		"weight_kg":  82.5,
		"note":       "morning",
		"created_at": "2024-01-10T00:00:00.000Z",
		"updated_at": "2024-01-10T00:00:00.000Z",
	}
	require.NoError(t, store.Rows.Insert(ctx, d, "w1", values))

	row, err := store.Rows.Get(ctx, d, "w1")
	require.NoError(t, err)
	assert.Equal(t, "w1", row.ID)
	assert.Equal(t, 82.5, row.Values["weight_kg"])
	assert.Equal(t, "morning", row.Values["note"])
	assert.Equal(t, "2024-01-10T00:00:00.000Z", row.Values["updated_at"])
	assert.False(t, row.Deleted())
}

func TestGet_NotFound(t *testing.T) {
	store := setupStore(t)
	d := weightLogs(t)

	_, err := store.Rows.Get(context.Background(), d, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateColumns(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	d := weightLogs(t)

	require.NoError(t, store.Rows.Insert(ctx, d, "w1", map[string]any{
		"weight_kg":  82.5,
		"created_at": "2024-01-10T00:00:00.000Z",
		"updated_at": "2024-01-10T00:00:00.000Z",
	}))

	require.NoError(t, store.Rows.UpdateColumns(ctx, d, "w1", map[string]any{
		"weight_kg":  81.0,
		"updated_at": "2024-01-11T00:00:00.000Z",
	}))

	row, err := store.Rows.Get(ctx, d, "w1")
	require.NoError(t, err)
	assert.Equal(t, 81.0, row.Values["weight_kg"])
	assert.Equal(t, "2024-01-11T00:00:00.000Z", row.Values["updated_at"])
	// Untouched columns survive a partial update.
	assert.Equal(t, "2024-01-10T00:00:00.000Z", row.Values["created_at"])
}

func TestUpdateColumns_NotFound(t *testing.T) {
	store := setupStore(t)
	d := weightLogs(t)

	err := store.Rows.UpdateColumns(context.Background(), d, "missing", map[string]any{"weight_kg": 80.0})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpsert_InsertsThenUpdates(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	d := weightLogs(t)

	require.NoError(t, store.Rows.Upsert(ctx, d, "w1", map[string]any{
		"weight_kg":  82.5,
		"created_at": "2024-01-10T00:00:00.000Z",
		"updated_at": "2024-01-10T00:00:00.000Z",
	}))
	require.NoError(t, store.Rows.Upsert(ctx, d, "w1", map[string]any{
		"weight_kg":  80.0,
		"updated_at": "2024-01-12T00:00:00.000Z",
	}))

	row, err := store.Rows.Get(ctx, d, "w1")
	require.NoError(t, err)
	assert.Equal(t, 80.0, row.Values["weight_kg"])
	assert.Equal(t, "2024-01-12T00:00:00.000Z", row.Values["updated_at"])

	rows, err := store.Rows.List(ctx, d)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUpsert_IgnoresUndeclaredColumns(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	d := weightLogs(t)

	// Columns absent from the registry never reach the generated SQL.
	require.NoError(t, store.Rows.Upsert(ctx, d, "w1", d.FilterPayload(map[string]any{
		"weight_kg":  82.5,
		"updated_at": "2024-01-10T00:00:00.000Z",
		"dropme":     "x",
	})))

	row, err := store.Rows.Get(ctx, d, "w1")
	require.NoError(t, err)
	assert.Equal(t, 82.5, row.Values["weight_kg"])
	assert.NotContains(t, row.Values, "dropme")
}

func TestList_ExcludesTombstonesAndOrdersByUpdatedAt(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	d := weightLogs(t)

	require.NoError(t, store.Rows.Insert(ctx, d, "w2", map[string]any{
		"weight_kg":  81.0,
		"created_at": "2024-01-12T00:00:00.000Z",
		"updated_at": "2024-01-12T00:00:00.000Z",
	}))
	require.NoError(t, store.Rows.Insert(ctx, d, "w1", map[string]any{
		"weight_kg":  82.5,
		"created_at": "2024-01-10T00:00:00.000Z",
		"updated_at": "2024-01-10T00:00:00.000Z",
	}))
	require.NoError(t, store.Rows.Insert(ctx, d, "w3", map[string]any{
		"weight_kg":  80.0,
		"created_at": "2024-01-11T00:00:00.000Z",
		"updated_at": "2024-01-14T00:00:00.000Z",
		"deleted_at": "2024-01-14T00:00:00.000Z",
	}))

	rows, err := store.Rows.List(ctx, d)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "w1", rows[0].ID)
	assert.Equal(t, "w2", rows[1].ID)
}
