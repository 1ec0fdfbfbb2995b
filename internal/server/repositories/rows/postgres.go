package rows

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dsemenov/dosetrack/internal/common"
	"github.com/dsemenov/dosetrack/internal/dbx"
	"github.com/dsemenov/dosetrack/internal/schema"
	"github.com/dsemenov/dosetrack/internal/server/models"
)

// PostgresRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns a new PostgresRepository bound to the given
// DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// dataColumns returns the descriptor's columns minus id and user_id, which
// are always bound from the call arguments, never from values.
func dataColumns(d *schema.Descriptor) []string {
	cols := make([]string, 0, len(d.Columns())-2)
	for _, c := range d.Columns() {
		if c == schema.ColID || c == schema.ColUserID {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

// presentColumns returns the data columns that have a value in values, in
// descriptor order, so generated SQL is deterministic.
func presentColumns(d *schema.Descriptor, values map[string]any) []string {
	cols := make([]string, 0, len(values))
	for _, c := range dataColumns(d) {
		if _, ok := values[c]; ok {
			cols = append(cols, c)
		}
	}
	return cols
}

func (r *PostgresRepository) Get(ctx context.Context, d *schema.Descriptor, userID string, id string) (*models.Row, error) {
	cols := append([]string{schema.ColID}, dataColumns(d)...)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 AND id = $2`,
		strings.Join(cols, ", "), d.Table)

	dest := make([]any, len(cols))
	for i := range dest {
		var v any
		dest[i] = &v
	}

	if err := r.db.QueryRowContext(ctx, query, userID, id).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get %s row: %w", d.Table, err)
	}

	return scannedRow(cols, dest), nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, d *schema.Descriptor, userID string, id string, values map[string]any) error {
	cols := presentColumns(d, values)

	names := append([]string{schema.ColID, schema.ColUserID}, cols...)
	args := make([]any, 0, len(names))
	args = append(args, id, userID)
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		args = append(args, values[c])
		sets = append(sets, fmt.Sprintf("%s = excluded.%s", c, c))
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		d.Table, strings.Join(names, ", "), placeholders(len(names)))
	if len(sets) > 0 {
		query += fmt.Sprintf(` ON CONFLICT (user_id, id) DO UPDATE SET %s`, strings.Join(sets, ", "))
	} else {
		query += ` ON CONFLICT (user_id, id) DO NOTHING`
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert %s row: %w", d.Table, err)
	}
	return nil
}

func (r *PostgresRepository) UpdateColumns(ctx context.Context, d *schema.Descriptor, userID string, id string, values map[string]any) error {
	cols := presentColumns(d, values)
	if len(cols) == 0 {
		return nil
	}

	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+2)
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+1))
		args = append(args, values[c])
	}
	args = append(args, userID, id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE user_id = $%d AND id = $%d`,
		d.Table, strings.Join(sets, ", "), len(cols)+1, len(cols)+2)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s row: %w", d.Table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) SelectUpdatedSince(ctx context.Context, d *schema.Descriptor, userID string, cursor string, limit int) ([]*models.Row, error) {
	cols := append([]string{schema.ColID}, dataColumns(d)...)
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE user_id = $1 AND updated_at > $2 ORDER BY updated_at, id LIMIT $3`,
		strings.Join(cols, ", "), d.Table)

	rows, err := r.db.QueryContext(ctx, query, userID, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s rows: %w", d.Table, err)
	}
	defer rows.Close()

	var result []*models.Row
	for rows.Next() {
		dest := make([]any, len(cols))
		for i := range dest {
			var v any
			dest[i] = &v
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", d.Table, err)
		}
		result = append(result, scannedRow(cols, dest))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", d.Table, err)
	}
	return result, nil
}

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}

// scannedRow converts scan destinations into a Row, normalizing []byte
// values to string so callers see driver-independent types.
func scannedRow(cols []string, dest []any) *models.Row {
	row := &models.Row{Values: make(map[string]any, len(cols))}
	for i, c := range cols {
		v := *(dest[i].(*any))
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		if c == schema.ColID {
			row.ID, _ = v.(string)
			continue
		}
		row.Values[c] = v
	}
	return row
}
