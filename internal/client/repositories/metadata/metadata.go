// Package metadata is a small key/value store inside the client database.
// It holds the device-local sync bookkeeping: the last sync cursor and the
// stored auth token.
package metadata

import "context"

// Well-known keys.
const (
	KeyLastSyncCursor = "last_sync_cursor"
	KeyAuthToken      = "auth_token"
)

type Repository interface {
	// Get returns the value for key, or "" with no error when the key is
	// absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
