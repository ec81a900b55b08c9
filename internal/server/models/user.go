// Package models defines the server-side records held by the stores.
package models

import "time"

// User is a registered account. Email is the unique key.
type User struct {
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
