// Package users declares the user store contract and its in-memory and
// PostgreSQL implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// PasswordCheck inspects the currently stored hash before a conditional update.
type PasswordCheck func(currentHash string) error

type Repository interface {
	// Create inserts user unless the email is taken, in which case it returns
	// common.ErrorAlreadyExists. The check and the insert are atomic.
	Create(ctx context.Context, user *models.User) error

	// GetUserByEmail returns a copy of the stored user or common.ErrorNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdatePassword replaces the hash; common.ErrorNotFound when absent.
	UpdatePassword(ctx context.Context, email string, passwordHash string) error

	// UpdatePasswordIf runs check against the stored hash and replaces it only
	// when check returns nil, without another writer slipping in between.
	UpdatePasswordIf(ctx context.Context, email string, check PasswordCheck, passwordHash string) error
}
