package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dsemenov/dosetrack/internal/client/models"
	"github.com/dsemenov/dosetrack/internal/dbx"
	"github.com/dsemenov/dosetrack/internal/syncwire"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, e *models.OutboxEntry) error {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode outbox payload: %w", err)
	}

	query := `
		INSERT INTO outbox (table_name, row_id, operation, payload_json, timestamp, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		e.Table, e.RowID, string(e.Operation), string(payload), e.Timestamp,
		syncwire.FormatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to append outbox entry: %w", err)
	}
	return nil
}

// GetPending returns pending entries ordered by sequence id. An entry whose
// stored payload no longer decodes is unrecoverable locally; it is deleted
// so one corrupt row cannot wedge the whole queue or sit in it forever.
func (r *SQLiteRepository) GetPending(ctx context.Context, limit int) ([]*models.OutboxEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	query := `
		SELECT sequence_id, table_name, row_id, operation, payload_json, timestamp, created_at
		FROM outbox
		ORDER BY sequence_id
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select outbox entries: %w", err)
	}
	defer rows.Close()

	var result []*models.OutboxEntry
	var corrupt []int64
	for rows.Next() {
		var (
			e         models.OutboxEntry
			operation string
			payload   string
			createdAt string
		)
		if err := rows.Scan(&e.SequenceID, &e.Table, &e.RowID, &operation, &payload, &e.Timestamp, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox entry: %w", err)
		}
		e.Operation = syncwire.Operation(operation)
		if err := json.Unmarshal([]byte(payload), &e.Payload); err != nil {
			corrupt = append(corrupt, e.SequenceID)
			continue
		}
		if t, err := syncwire.ParseTime(createdAt); err == nil {
			e.CreatedAt = t
		}
		result = append(result, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outbox entries: %w", err)
	}
	rows.Close()

	if err := r.deleteBySequenceIDs(ctx, corrupt); err != nil {
		return nil, err
	}
	return result, nil
}

// deleteBySequenceIDs drops entries whose payloads failed to decode.
func (r *SQLiteRepository) deleteBySequenceIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := fmt.Sprintf(`DELETE FROM outbox WHERE sequence_id IN (%s)`,
		strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to drop corrupt outbox entries: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ClearByRowIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := fmt.Sprintf(`DELETE FROM outbox WHERE row_id IN (%s)`,
		strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear outbox entries: %w", err)
	}
	return nil
}
