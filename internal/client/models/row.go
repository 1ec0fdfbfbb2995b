package models

// Row is a generic synced-table row as stored locally: the id plus every
// other column keyed by name. Values carry whatever the driver returned
// (string, float64, int64, nil).
type Row struct {
	ID     string
	Values map[string]any
}

// Deleted reports whether the row is a tombstone.
func (r *Row) Deleted() bool {
	v, ok := r.Values["deleted_at"]
	return ok && v != nil
}
