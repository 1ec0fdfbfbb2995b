// Package models contains the server side persistence models.
package models

// User is an account that owns synced rows.
type User struct {
	ID           string
	Username     string
	PasswordHash string
}
