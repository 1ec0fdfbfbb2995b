// Package repomanager wires repositories to database handles. Services ask
// the manager for repositories bound either to the pooled *sql.DB or to a
// transaction, so one transaction can span several repositories.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dsemenov/dosetrack/internal/dbx"
	"github.com/dsemenov/dosetrack/internal/server/repositories/rows"
	"github.com/dsemenov/dosetrack/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Rows(db dbx.DBTX) rows.Repository
}
