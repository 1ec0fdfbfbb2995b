// Package syncwire defines the JSON envelopes exchanged between the client
// and the sync API, plus the timestamp conventions shared by both sides.
//
// updated_at values travel as ISO8601 strings with millisecond precision in
// UTC. The fixed-width layout makes lexicographic order equal chronological
// order, so cursors can be compared directly in SQL.
package syncwire

import "time"

// TimeLayout is the canonical updated_at / cursor format.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime renders t in the canonical layout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a canonical timestamp string.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}

// Operation is the kind of mutation carried by a Change.
type Operation string

const (
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Change is the unit of transfer in both directions: one mutation of one row
// of one synced table. Timestamp is the client's updated_at claim in Unix
// milliseconds.
type Change struct {
	Table     string         `json:"table"`
	ID        string         `json:"id"`
	Operation Operation      `json:"operation"`
	Payload   map[string]any `json:"payload"`
	Timestamp int64          `json:"timestamp"`
}

// Time returns the change's timestamp claim as a time.Time.
func (c Change) Time() time.Time {
	return time.UnixMilli(c.Timestamp).UTC()
}

// Conflict reports a pushed change that lost the newer-wins comparison.
// ServerVersion is the untouched server row; Table names the synced table it
// belongs to, copied from the triggering change.
type Conflict struct {
	Table         string         `json:"table"`
	ID            string         `json:"id"`
	ServerVersion map[string]any `json:"serverVersion"`
}

type PushRequest struct {
	Changes []Change `json:"changes"`
}

type PushResponse struct {
	Accepted  []string   `json:"accepted"`
	Conflicts []Conflict `json:"conflicts"`
}

type PullRequest struct {
	Cursor string `json:"cursor"`
	Limit  int    `json:"limit,omitempty"`
}

type PullResponse struct {
	Changes []Change `json:"changes"`
	Cursor  string   `json:"cursor"`
	HasMore bool     `json:"hasMore"`
}
