package rows

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dsemenov/dosetrack/internal/client/models"
	"github.com/dsemenov/dosetrack/internal/common"
	"github.com/dsemenov/dosetrack/internal/dbx"
	"github.com/dsemenov/dosetrack/internal/schema"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// presentColumns returns the descriptor's local columns (minus id) that have
// a value in values, in descriptor order, so generated SQL is deterministic.
func presentColumns(d *schema.Descriptor, values map[string]any) []string {
	cols := make([]string, 0, len(values))
	for _, c := range d.LocalColumns() {
		if c == schema.ColID {
			continue
		}
		if _, ok := values[c]; ok {
			cols = append(cols, c)
		}
	}
	return cols
}

func (r *SQLiteRepository) Get(ctx context.Context, d *schema.Descriptor, id string) (*models.Row, error) {
	cols := d.LocalColumns()
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, strings.Join(cols, ", "), d.Table)

	dest := make([]any, len(cols))
	for i := range dest {
		var v any
		dest[i] = &v
	}

	if err := r.db.QueryRowContext(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get %s row: %w", d.Table, err)
	}

	return scannedRow(cols, dest), nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, d *schema.Descriptor, id string, values map[string]any) error {
	cols := presentColumns(d, values)

	names := append([]string{schema.ColID}, cols...)
	args := make([]any, 0, len(names))
	args = append(args, id)
	for _, c := range cols {
		args = append(args, values[c])
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		d.Table, strings.Join(names, ", "), placeholders(len(names)))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert %s row: %w", d.Table, err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateColumns(ctx context.Context, d *schema.Descriptor, id string, values map[string]any) error {
	cols := presentColumns(d, values)
	if len(cols) == 0 {
		return nil
	}

	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		sets = append(sets, c+" = ?")
		args = append(args, values[c])
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = ?`, d.Table, strings.Join(sets, ", "))

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

func (r *SQLiteRepository) Upsert(ctx context.Context, d *schema.Descriptor, id string, values map[string]any) error {
	cols := presentColumns(d, values)

	names := append([]string{schema.ColID}, cols...)
	args := make([]any, 0, len(names))
	args = append(args, id)
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		args = append(args, values[c])
		sets = append(sets, fmt.Sprintf("%s = excluded.%s", c, c))
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		d.Table, strings.Join(names, ", "), placeholders(len(names)))
	if len(sets) > 0 {
		query += fmt.Sprintf(` ON CONFLICT(id) DO UPDATE SET %s`, strings.Join(sets, ", "))
	} else {
		query += ` ON CONFLICT(id) DO NOTHING`
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert %s row: %w", d.Table, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, d *schema.Descriptor) ([]*models.Row, error) {
	cols := d.LocalColumns()
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE deleted_at IS NULL ORDER BY updated_at`,
		strings.Join(cols, ", "), d.Table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s rows: %w", d.Table, err)
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
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
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
