// Package models holds the client-side data structures for the local store.
package models

import (
	"time"

	"github.com/dsemenov/dosetrack/internal/syncwire"
)

// OutboxEntry is one pending local mutation awaiting upload. Entries are
// created in the same transaction as the domain write they describe and are
// deleted only after the server confirms acceptance.
type OutboxEntry struct {
	SequenceID int64
	Table      string
	RowID      string
	Operation  syncwire.Operation
	Payload    map[string]any
	Timestamp  int64 // updated_at claim, Unix milliseconds
	CreatedAt  time.Time
}

// Change converts the entry into its wire form.
func (e *OutboxEntry) Change() syncwire.Change {
	return syncwire.Change{
		Table:     e.Table,
		ID:        e.RowID,
		Operation: e.Operation,
		Payload:   e.Payload,
		Timestamp: e.Timestamp,
	}
}
