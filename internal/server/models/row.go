package models

// Row is a generic synced-table row as stored on the server: the id plus
// every non-identity column keyed by name. Ownership (user_id) is implicit,
// repositories always scope queries to one user.
type Row struct {
	ID     string
	Values map[string]any
}

// Deleted reports whether the row is a tombstone.
func (r *Row) Deleted() bool {
	v, ok := r.Values["deleted_at"]
	return ok && v != nil
}

// UpdatedAt returns the row's updated_at value, or "" when unset.
func (r *Row) UpdatedAt() string {
	v, _ := r.Values["updated_at"].(string)
	return v
}
