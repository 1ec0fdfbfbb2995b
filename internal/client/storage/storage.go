// Package storage opens the client SQLite database, applies migrations, and
// bundles the repositories built on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dsemenov/dosetrack/internal/client/migrations"
	"github.com/dsemenov/dosetrack/internal/filex"
	"github.com/dsemenov/dosetrack/internal/client/repositories/metadata"
	"github.com/dsemenov/dosetrack/internal/client/repositories/outbox"
	"github.com/dsemenov/dosetrack/internal/client/repositories/rows"
)

// Store is the opened client database plus its repositories. Services that
// need transactional writes use DB with dbx.WithTx and construct tx-scoped
// repositories; everything else uses the prebuilt ones.
type Store struct {
	DB       *sql.DB
	Metadata metadata.Repository
	Rows     rows.Repository
	Outbox   outbox.Repository
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the SQLite database at dsn, applies
// migrations, and returns the Store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The outbox write path and the sync-apply path serialize through the
	// same connection; WAL keeps concurrent readers unblocked.
	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA busy_timeout = 5000`,
		`PRAGMA foreign_keys = ON`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &Store{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
		Rows:     rows.NewSQLiteRepository(db),
		Outbox:   outbox.NewSQLiteRepository(db),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}
