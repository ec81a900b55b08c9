// Package session persists the CLI login state (bearer token and email)
// in a local SQLite file so a session survives restarts.
package session

import (
	"context"
)

// Well-known keys.
const (
	KeyToken = "token"
	KeyEmail = "email"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
