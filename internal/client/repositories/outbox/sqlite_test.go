package outbox_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsemenov/dosetrack/internal/client/models"
	"github.com/dsemenov/dosetrack/internal/client/storage"
	"github.com/dsemenov/dosetrack/internal/syncwire"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func entry(table, rowID string, op syncwire.Operation) *models.OutboxEntry {
	return &models.OutboxEntry{
		Table:     table,
		RowID:     rowID,
		Operation: op,
		Payload:   map[string]any{"note": "n-" + rowID},
		Timestamp: time.Now().UnixMilli(),
		CreatedAt: time.Now(),
	}
}

func TestGetPending_FIFOOrder(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Outbox.Append(ctx, entry("weight_logs", "a", syncwire.OpInsert)))
	require.NoError(t, store.Outbox.Append(ctx, entry("weight_logs", "b", syncwire.OpInsert)))
	require.NoError(t, store.Outbox.Append(ctx, entry("weight_logs", "a", syncwire.OpUpdate)))

	pending, err := store.Outbox.GetPending(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 3)

	assert.Equal(t, "a", pending[0].RowID)
	assert.Equal(t, syncwire.OpInsert, pending[0].Operation)
	assert.Equal(t, "b", pending[1].RowID)
	assert.Equal(t, "a", pending[2].RowID)
	assert.Equal(t, syncwire.OpUpdate, pending[2].Operation)

	assert.Less(t, pending[0].SequenceID, pending[1].SequenceID)
	assert.Less(t, pending[1].SequenceID, pending[2].SequenceID)
}

func TestGetPending_Limit(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Outbox.Append(ctx, entry("goals", id, syncwire.OpInsert)))
	}

	pending, err := store.Outbox.GetPending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].RowID)
	assert.Equal(t, "b", pending[1].RowID)
}

func TestGetPending_PayloadRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	e := entry("weight_logs", "a", syncwire.OpInsert)
	e.Payload = map[string]any{"weight_kg": 82.5, "note": "morning"}
	require.NoError(t, store.Outbox.Append(ctx, e))

	pending, err := store.Outbox.GetPending(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	assert.Equal(t, 82.5, pending[0].Payload["weight_kg"])
	assert.Equal(t, "morning", pending[0].Payload["note"])
	assert.Equal(t, e.Timestamp, pending[0].Timestamp)
}

func TestGetPending_DropsCorruptPayload(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Outbox.Append(ctx, entry("weight_logs", "a", syncwire.OpInsert)))
	require.NoError(t, store.Outbox.Append(ctx, entry("weight_logs", "b", syncwire.OpInsert)))

	_, err := store.DB.ExecContext(ctx, `UPDATE outbox SET payload_json = 'not json' WHERE row_id = 'a'`)
	require.NoError(t, err)

	pending, err := store.Outbox.GetPending(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b", pending[0].RowID)

	// The undecodable entry is removed, not carried forever.
	var count int
	require.NoError(t, store.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM outbox`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestClearByRowIDs(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Outbox.Append(ctx, entry("weight_logs", "a", syncwire.OpInsert)))
	require.NoError(t, store.Outbox.Append(ctx, entry("weight_logs", "a", syncwire.OpUpdate)))
	require.NoError(t, store.Outbox.Append(ctx, entry("weight_logs", "b", syncwire.OpInsert)))

	require.NoError(t, store.Outbox.ClearByRowIDs(ctx, []string{"a"}))

	pending, err := store.Outbox.GetPending(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b", pending[0].RowID)
}

func TestClearByRowIDs_EmptyIsNoop(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Outbox.Append(ctx, entry("weight_logs", "a", syncwire.OpInsert)))
	require.NoError(t, store.Outbox.ClearByRowIDs(ctx, nil))

	pending, err := store.Outbox.GetPending(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
