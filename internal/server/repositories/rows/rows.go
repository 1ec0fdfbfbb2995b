// Package rows persists synced-table rows on the server. One repository
// serves every registered table; SQL is generated from the schema registry
// so table and column identifiers never come from user input.
package rows

import (
	"context"

	"github.com/dsemenov/dosetrack/internal/schema"
	"github.com/dsemenov/dosetrack/internal/server/models"
)

// Repository is the storage contract for synced rows, scoped to one user
// per call.
type Repository interface {
	// Get returns the row with the given id, tombstones included, or
	// common.ErrorNotFound.
	Get(ctx context.Context, d *schema.Descriptor, userID string, id string) (*models.Row, error)
	// Upsert inserts the row or replaces the given columns when it exists.
	Upsert(ctx context.Context, d *schema.Descriptor, userID string, id string, values map[string]any) error
	// UpdateColumns sets only the given columns on an existing row.
	// Returns common.ErrorNotFound when no row matched.
	UpdateColumns(ctx context.Context, d *schema.Descriptor, userID string, id string, values map[string]any) error
	// SelectUpdatedSince returns up to limit rows with updated_at strictly
	// greater than cursor, tombstones included, ordered by (updated_at, id).
	SelectUpdatedSince(ctx context.Context, d *schema.Descriptor, userID string, cursor string, limit int) ([]*models.Row, error)
}
