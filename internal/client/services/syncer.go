package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dsemenov/dosetrack/internal/client/httpclient"
	"github.com/dsemenov/dosetrack/internal/client/repositories/metadata"
	"github.com/dsemenov/dosetrack/internal/client/repositories/outbox"
	"github.com/dsemenov/dosetrack/internal/client/repositories/rows"
	"github.com/dsemenov/dosetrack/internal/common"
	"github.com/dsemenov/dosetrack/internal/dbx"
	"github.com/dsemenov/dosetrack/internal/logging"
	"github.com/dsemenov/dosetrack/internal/schema"
	"github.com/dsemenov/dosetrack/internal/syncwire"
)

// Syncer runs one pull-then-push cycle against the sync server.
//
// A cycle is resumable: pulls are idempotent, the cursor is persisted after
// the pulled page is applied, and outbox entries are cleared only after the
// server confirmed acceptance. A crash mid-cycle just means the next cycle
// redoes a little work.
type Syncer struct {
	db     *sql.DB
	meta   metadata.Repository
	outbox outbox.Repository
	rows   rows.Repository
	remote httpclient.Remote
	log    logging.Logger
}

func NewSyncer(db *sql.DB, meta metadata.Repository, ob outbox.Repository, rw rows.Repository, remote httpclient.Remote, log logging.Logger) *Syncer {
	return &Syncer{db: db, meta: meta, outbox: ob, rows: rw, remote: remote, log: log.With("component", "syncer")}
}

// RunCycle executes one full sync cycle. It returns common.ErrorUnauthorized
// without touching the network when no auth token is stored.
func (s *Syncer) RunCycle(ctx context.Context) error {
	token, err := s.meta.Get(ctx, metadata.KeyAuthToken)
	if err != nil {
		return fmt.Errorf("failed to read auth token: %w", err)
	}
	if token == "" {
		return common.ErrorUnauthorized
	}

	if err := s.pull(ctx, token); err != nil {
		return fmt.Errorf("pull: %w", err)
	}

	if err := s.push(ctx, token); err != nil {
		return fmt.Errorf("push: %w", err)
	}

	return nil
}

// pull downloads server changes past the stored cursor, applies them, and
// advances the cursor. Pages are fetched until the server reports no more.
func (s *Syncer) pull(ctx context.Context, token string) error {
	for {
		cursor, err := s.meta.Get(ctx, metadata.KeyLastSyncCursor)
		if err != nil {
			return fmt.Errorf("failed to read cursor: %w", err)
		}

		resp, err := s.remote.Pull(ctx, token, syncwire.PullRequest{Cursor: cursor})
		if err != nil {
			return err
		}

		for _, change := range resp.Changes {
			if err := s.applyChange(ctx, change); err != nil {
				return err
			}
		}

		if resp.Cursor != cursor {
			if err := s.meta.Set(ctx, metadata.KeyLastSyncCursor, resp.Cursor); err != nil {
				return fmt.Errorf("failed to persist cursor: %w", err)
			}
		}

		s.log.Debug(ctx, "pulled page", "changes", len(resp.Changes), "cursor", resp.Cursor, "has_more", resp.HasMore)

		if !resp.HasMore {
			return nil
		}
	}
}

// applyChange applies one pulled change to the local store. The server is
// authoritative here: rows are upserted as-is, deletes land as tombstones.
// Changes naming an unknown table are dropped; an old client talking to a
// newer server must not fail the whole batch.
func (s *Syncer) applyChange(ctx context.Context, change syncwire.Change) error {
	d, err := schema.Lookup(change.Table)
	if err != nil {
		s.log.Warn(ctx, "skipping change for unknown table", "table", change.Table, "id", change.ID)
		return nil
	}

	values := d.FilterPayload(change.Payload)
	if change.Operation == syncwire.OpDelete {
		// The payload is the full tombstoned row; keep a safety net in case
		// a server omits the marker.
		if values[schema.ColDeletedAt] == nil {
			values[schema.ColDeletedAt] = syncwire.FormatTime(change.Time())
		}
	}

	if err := s.rows.Upsert(ctx, d, change.ID, values); err != nil {
		return fmt.Errorf("failed to apply %s/%s: %w", change.Table, change.ID, err)
	}
	return nil
}

// push uploads the whole outbox, clears accepted entries, and resolves
// conflicts by overwriting the local row with the server's version. On
// conflict the server wins unconditionally.
func (s *Syncer) push(ctx context.Context, token string) error {
	pending, err := s.outbox.GetPending(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to read outbox: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	req := syncwire.PushRequest{Changes: make([]syncwire.Change, 0, len(pending))}
	for _, e := range pending {
		req.Changes = append(req.Changes, e.Change())
	}

	resp, err := s.remote.Push(ctx, token, req)
	if err != nil {
		return err
	}

	if err := s.outbox.ClearByRowIDs(ctx, resp.Accepted); err != nil {
		return fmt.Errorf("failed to clear accepted entries: %w", err)
	}

	for _, conflict := range resp.Conflicts {
		if err := s.resolveConflict(ctx, conflict); err != nil {
			return err
		}
	}

	s.log.Info(ctx, "pushed outbox", "accepted", len(resp.Accepted), "conflicts", len(resp.Conflicts))
	return nil
}

// resolveConflict overwrites the local row with the server version and drops
// the row's pending outbox entries, atomically.
func (s *Syncer) resolveConflict(ctx context.Context, conflict syncwire.Conflict) error {
	d, err := schema.Lookup(conflict.Table)
	if err != nil {
		s.log.Warn(ctx, "skipping conflict for unknown table", "table", conflict.Table, "id", conflict.ID)
		return nil
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rowRepo := rows.NewSQLiteRepository(tx)
		outboxRepo := outbox.NewSQLiteRepository(tx)

		if err := rowRepo.Upsert(ctx, d, conflict.ID, d.FilterPayload(conflict.ServerVersion)); err != nil {
			return fmt.Errorf("failed to apply server version of %s/%s: %w", conflict.Table, conflict.ID, err)
		}
		return outboxRepo.ClearByRowIDs(ctx, []string{conflict.ID})
	})
}
