// Package services contains the client-side business logic: the single
// outbox write path, the sync cycle, its scheduler, and the domain helpers
// built on top of them.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dsemenov/dosetrack/internal/client/models"
	"github.com/dsemenov/dosetrack/internal/client/repositories/outbox"
	"github.com/dsemenov/dosetrack/internal/client/repositories/rows"
	"github.com/dsemenov/dosetrack/internal/dbx"
	"github.com/dsemenov/dosetrack/internal/schema"
	"github.com/dsemenov/dosetrack/internal/syncwire"
)

// Writer is the single write path for every local domain mutation. Each call
// applies the row change and appends the matching outbox entry in one SQLite
// transaction: both happen or neither does.
//
// Column legality is not validated here beyond the schema registry filter;
// that is the domain layer's job.
type Writer struct {
	db  *sql.DB
	now func() time.Time
}

func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db, now: time.Now}
}

// Write applies op to the given row and records it in the outbox.
//
// For inserts and updates the payload carries the domain columns; created_at
// and updated_at are synthesized here. For deletes the payload is ignored
// and the tombstone columns (deleted_at, updated_at) are synthesized, so the
// outbox entry carries the tombstone to the server.
func (w *Writer) Write(ctx context.Context, table string, id string, op syncwire.Operation, payload map[string]any) error {
	d, err := schema.Lookup(table)
	if err != nil {
		return err
	}

	now := w.now()
	stamp := syncwire.FormatTime(now)

	var values map[string]any
	switch op {
	case syncwire.OpInsert:
		values = d.FilterPayload(payload)
		values[schema.ColCreatedAt] = stamp
		values[schema.ColUpdatedAt] = stamp
	case syncwire.OpUpdate:
		values = d.FilterPayload(payload)
		values[schema.ColUpdatedAt] = stamp
	case syncwire.OpDelete:
		values = map[string]any{
			schema.ColDeletedAt: stamp,
			schema.ColUpdatedAt: stamp,
		}
	default:
		return fmt.Errorf("unknown operation %q", op)
	}

	return dbx.WithTx(ctx, w.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rowRepo := rows.NewSQLiteRepository(tx)
		outboxRepo := outbox.NewSQLiteRepository(tx)

		switch op {
		case syncwire.OpInsert:
			if err := rowRepo.Insert(ctx, d, id, values); err != nil {
				return err
			}
		default:
			if err := rowRepo.UpdateColumns(ctx, d, id, values); err != nil {
				return err
			}
		}

		return outboxRepo.Append(ctx, &models.OutboxEntry{
			Table:     table,
			RowID:     id,
			Operation: op,
			Payload:   values,
			Timestamp: now.UnixMilli(),
			CreatedAt: now,
		})
	})
}
