// Package outbox persists the local queue of pending mutations awaiting
// upload to the sync server.
package outbox

import (
	"context"

	"github.com/dsemenov/dosetrack/internal/client/models"
)

type Repository interface {
	// Append stores a new entry at the tail of the queue.
	Append(ctx context.Context, e *models.OutboxEntry) error

	// GetPending returns up to limit entries in strict insertion order
	// (FIFO). limit <= 0 means no limit. Replay order is load-bearing:
	// insert -> update -> delete for one row must reach the server in that
	// order.
	GetPending(ctx context.Context, limit int) ([]*models.OutboxEntry, error)

	// ClearByRowIDs removes every entry whose row id is in ids. Matching is
	// by row id, not sequence number: the client always pushes the whole
	// outbox, so all entries of an accepted row are confirmed together.
	ClearByRowIDs(ctx context.Context, ids []string) error
}
