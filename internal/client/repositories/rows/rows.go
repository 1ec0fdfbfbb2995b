// Package rows reads and writes synced-table rows in the client database.
// All statements are generated from the schema registry: table and column
// identifiers come from the closed descriptor set, values are always bound
// as parameters.
package rows

import (
	"context"

	"github.com/dsemenov/dosetrack/internal/client/models"
	"github.com/dsemenov/dosetrack/internal/schema"
)

type Repository interface {
	// Get returns the row with the given id, tombstoned or not.
	// common.ErrorNotFound when absent.
	Get(ctx context.Context, d *schema.Descriptor, id string) (*models.Row, error)

	// Insert creates a new row from the given column values.
	Insert(ctx context.Context, d *schema.Descriptor, id string, values map[string]any) error

	// UpdateColumns applies the given column values to an existing row.
	UpdateColumns(ctx context.Context, d *schema.Descriptor, id string, values map[string]any) error

	// Upsert inserts the row or, if it already exists, overwrites the given
	// columns. Used when applying pulled server changes, where the server is
	// authoritative.
	Upsert(ctx context.Context, d *schema.Descriptor, id string, values map[string]any) error

	// List returns all non-tombstoned rows of the table.
	List(ctx context.Context, d *schema.Descriptor) ([]*models.Row, error)
}
