// Package services contains server-side business logic. This file implements
// SyncService, the authoritative half of the sync protocol: it applies pushed
// client changes with newer-wins conflict detection and serves incremental
// pulls over a cursor.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dsemenov/dosetrack/internal/common"
	"github.com/dsemenov/dosetrack/internal/dbx"
	"github.com/dsemenov/dosetrack/internal/logging"
	"github.com/dsemenov/dosetrack/internal/schema"
	"github.com/dsemenov/dosetrack/internal/server/models"
	"github.com/dsemenov/dosetrack/internal/server/repositories/repomanager"
	"github.com/dsemenov/dosetrack/internal/server/repositories/rows"
	"github.com/dsemenov/dosetrack/internal/syncwire"
)

type SyncService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	logger        logging.Logger
	pullPageLimit int
	now           func() time.Time
}

func NewSyncService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger, pullPageLimit int) *SyncService {
	if pullPageLimit <= 0 {
		pullPageLimit = 1000
	}
	return &SyncService{
		db:            db,
		repomanager:   m,
		logger:        logger,
		pullPageLimit: pullPageLimit,
		now:           time.Now,
	}
}

// Push applies a batch of client changes for one user inside a single
// transaction. Every change is resolved independently: its id lands either
// in the accepted list or, when the server row is newer, in the conflicts
// list together with the full server version. A change wins when its
// timestamp is greater than or equal to the server row's updated_at;
// accepted changes are stored with server-assigned timestamps.
//
// Changes for tables this server version does not know are dropped without
// failing the batch; they appear in neither list.
func (s *SyncService) Push(ctx context.Context, userID string, changes []syncwire.Change) (*syncwire.PushResponse, error) {
	resp := &syncwire.PushResponse{
		Accepted:  []string{},
		Conflicts: []syncwire.Conflict{},
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Rows(tx)

		for _, change := range changes {
			d, err := schema.Lookup(change.Table)
			if err != nil {
				if errors.Is(err, common.ErrUnknownTable) {
					s.logger.Warn(ctx, "push: dropping change for unknown table",
						"table", change.Table, "id", change.ID)
					continue
				}
				return err
			}

			conflict, err := s.applyChange(ctx, repo, d, userID, change)
			if err != nil {
				return err
			}
			if conflict != nil {
				resp.Conflicts = append(resp.Conflicts, *conflict)
				continue
			}
			resp.Accepted = append(resp.Accepted, change.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// applyChange resolves one change against the stored row. It returns a
// non-nil conflict when the server row is strictly newer than the change's
// timestamp claim, otherwise it writes the change with server-assigned
// timestamps and returns nil.
func (s *SyncService) applyChange(ctx context.Context, repo rows.Repository, d *schema.Descriptor, userID string, change syncwire.Change) (*syncwire.Conflict, error) {

	changedAt := syncwire.FormatTime(change.Time())

	// Stored timestamps come from the server clock, never from the claim:
	// pull cursors compare against updated_at, so a device with a slow
	// clock must not place an accepted change behind another device's
	// cursor, where it would never be delivered.
	serverNow := syncwire.FormatTime(s.now())

	existing, err := repo.Get(ctx, d, userID, change.ID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	if existing == nil {
		if change.Operation == syncwire.OpDelete {
			// Nothing to tombstone; replayed deletes stay idempotent.
			return nil, nil
		}
		values := d.FilterPayload(change.Payload)
		values[schema.ColCreatedAt] = serverNow
		values[schema.ColUpdatedAt] = serverNow
		if err := repo.Upsert(ctx, d, userID, change.ID, values); err != nil {
			return nil, err
		}
		return nil, nil
	}

	// Newer-wins on wall clock: the change loses only when the stored row
	// is strictly newer. Timestamps use the fixed-width UTC layout, so the
	// string comparison is chronological.
	if changedAt < existing.UpdatedAt() {
		return &syncwire.Conflict{
			Table:         change.Table,
			ID:            change.ID,
			ServerVersion: existing.Values,
		}, nil
	}

	if change.Operation == syncwire.OpDelete {
		values := map[string]any{
			schema.ColDeletedAt: serverNow,
			schema.ColUpdatedAt: serverNow,
		}
		return nil, repo.UpdateColumns(ctx, d, userID, change.ID, values)
	}

	values := d.FilterPayload(change.Payload)
	values[schema.ColUpdatedAt] = serverNow
	return nil, repo.Upsert(ctx, d, userID, change.ID, values)
}

// Pull returns changes for one user with updated_at strictly greater than
// cursor, merged across every synced table, ordered by (updated_at, table,
// id) and truncated to limit. The returned cursor is the updated_at of the
// last change in the page; when nothing matched it equals the request
// cursor.
func (s *SyncService) Pull(ctx context.Context, userID string, cursor string, limit int) (*syncwire.PullResponse, error) {
	if limit <= 0 {
		limit = s.pullPageLimit
	}

	repo := s.repomanager.Rows(s.db)

	type candidate struct {
		table     string
		updatedAt string
		row       *models.Row
	}

	var candidates []candidate
	for _, d := range schema.All() {
		// One extra row per table so a full page can still report hasMore.
		rows, err := repo.SelectUpdatedSince(ctx, d, userID, cursor, limit+1)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if row.UpdatedAt() == "" {
				return nil, fmt.Errorf("%w: %s row %s has no updated_at", common.ErrCorruptRow, d.Table, row.ID)
			}
			candidates = append(candidates, candidate{
				table:     string(d.Table),
				updatedAt: row.UpdatedAt(),
				row:       row,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.updatedAt != b.updatedAt {
			return a.updatedAt < b.updatedAt
		}
		if a.table != b.table {
			return a.table < b.table
		}
		return a.row.ID < b.row.ID
	})

	hasMore := len(candidates) > limit
	if hasMore {
		candidates = candidates[:limit]
	}

	resp := &syncwire.PullResponse{
		Changes: []syncwire.Change{},
		Cursor:  cursor,
		HasMore: hasMore,
	}
	for _, c := range candidates {
		change, err := rowToChange(c.table, c.row)
		if err != nil {
			return nil, err
		}
		resp.Changes = append(resp.Changes, change)
		resp.Cursor = c.updatedAt
	}

	return resp, nil
}

// rowToChange converts a stored row to the wire change a client applies:
// tombstones travel as deletes, everything else as updates carrying the full
// row.
func rowToChange(table string, row *models.Row) (syncwire.Change, error) {
	t, err := syncwire.ParseTime(row.UpdatedAt())
	if err != nil {
		return syncwire.Change{}, fmt.Errorf("%w: %s row %s: %v", common.ErrCorruptRow, table, row.ID, err)
	}

	op := syncwire.OpUpdate
	if row.Deleted() {
		op = syncwire.OpDelete
	}

	return syncwire.Change{
		Table:     table,
		ID:        row.ID,
		Operation: op,
		Payload:   row.Values,
		Timestamp: t.UnixMilli(),
	}, nil
}
