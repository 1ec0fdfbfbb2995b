// Package schema is the registry of synced tables. The set is closed: every
// table participating in sync is declared here with its domain columns, and
// all SQL touching synced rows, on the client and on the server, is generated
// from these descriptors with parameterized statements.
//
// Every synced table shares the same envelope: a string id primary key, an
// owner user id, the declared domain columns, and the created_at /
// updated_at / deleted_at bookkeeping columns. updated_at is the sole
// logical clock for conflict resolution; deleted_at set means the row is a
// tombstone.
package schema

import (
	"fmt"

	"github.com/dsemenov/dosetrack/internal/common"
)

// Table names one of the synced domain tables.
type Table string

const (
	TableWeightLogs    Table = "weight_logs"
	TableInjectionLogs Table = "injection_logs"
	TableSchedules     Table = "schedules"
	TableGoals         Table = "goals"
	TableSettings      Table = "settings"
)

// Envelope column names shared by every synced table.
const (
	ColID        = "id"
	ColUserID    = "user_id"
	ColCreatedAt = "created_at"
	ColUpdatedAt = "updated_at"
	ColDeletedAt = "deleted_at"
)

// Descriptor describes one synced table: its name and the ordered list of
// domain columns between the id/user_id prefix and the timestamp suffix.
type Descriptor struct {
	Table   Table
	Domain  []string
	columns []string // full ordered column list, built once
	local   []string // same list without user_id, for the client store
}

// registry order is the cross-table iteration order used by pull; keep it
// stable so paginated pulls are deterministic.
var registry = []*Descriptor{
	newDescriptor(TableWeightLogs, "weight_kg", "logged_at", "note"),
	newDescriptor(TableInjectionLogs, "medication", "dose_mg", "injection_site", "injected_at", "note"),
	newDescriptor(TableSchedules, "medication", "dose_mg", "frequency", "start_date", "end_date", "active"),
	newDescriptor(TableGoals, "goal_type", "target_value", "target_date", "achieved"),
	newDescriptor(TableSettings, "name", "value"),
}

var byName = func() map[Table]*Descriptor {
	m := make(map[Table]*Descriptor, len(registry))
	for _, d := range registry {
		m[d.Table] = d
	}
	return m
}()

func newDescriptor(table Table, domain ...string) *Descriptor {
	columns := make([]string, 0, len(domain)+5)
	columns = append(columns, ColID, ColUserID)
	columns = append(columns, domain...)
	columns = append(columns, ColCreatedAt, ColUpdatedAt, ColDeletedAt)

	local := make([]string, 0, len(columns)-1)
	for _, c := range columns {
		if c != ColUserID {
			local = append(local, c)
		}
	}
	return &Descriptor{Table: table, Domain: domain, columns: columns, local: local}
}

// All returns the descriptors of every synced table in registry order.
func All() []*Descriptor {
	return registry
}

// Lookup resolves a table name to its descriptor. Unknown names return
// common.ErrUnknownTable; callers decide whether that is fatal (local write
// path) or skippable (incoming sync changes).
func Lookup(name string) (*Descriptor, error) {
	d, ok := byName[Table(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownTable, name)
	}
	return d, nil
}

// Columns returns the full ordered column list: id, user_id, the domain
// columns, created_at, updated_at, deleted_at.
func (d *Descriptor) Columns() []string {
	return d.columns
}

// LocalColumns returns the column list of the client-side store, which keeps
// no user_id: a device database belongs to exactly one user.
func (d *Descriptor) LocalColumns() []string {
	return d.local
}

// HasColumn reports whether name is a declared column of the table.
func (d *Descriptor) HasColumn(name string) bool {
	for _, c := range d.columns {
		if c == name {
			return true
		}
	}
	return false
}

// FilterPayload returns a copy of payload containing only declared columns.
// The id and user_id keys are dropped too: identity and ownership always
// come from the change envelope, never from the payload.
func (d *Descriptor) FilterPayload(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		if k == ColID || k == ColUserID {
			continue
		}
		if d.HasColumn(k) {
			out[k] = v
		}
	}
	return out
}
