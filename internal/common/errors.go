// Package common defines shared constants and sentinel errors used across
// client and server layers of dosetrack. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// ErrCorruptRow marks a stored row that can no longer be decoded.
	// Unrecoverable locally, fatal for that row only.
	ErrCorruptRow = errors.New("corrupt row")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Transport errors. ErrNetwork means the request never produced a
	// usable response; the next scheduled sync retries it.
	ErrNetwork = errors.New("network error")

	// Auth errors (invalid, malformed or expired token). Not retried
	// automatically: the user has to re-authenticate.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Schema errors.
	ErrUnknownTable = errors.New("unknown synced table")
)
