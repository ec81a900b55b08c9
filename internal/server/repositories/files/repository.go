// Package files declares the file store contract and its in-memory,
// PostgreSQL and S3 implementations.
//
// Every implementation reports a duplicate name as common.ErrorAlreadyExists
// and wraps any other failure, so callers can tell "already exists" from
// "store unavailable" with errors.Is.
package files

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

type Repository interface {
	// Create inserts file unless its name is taken. The check and the insert
	// are atomic.
	Create(ctx context.Context, file *models.File) error

	// List returns copies of all files in insertion order.
	List(ctx context.Context) ([]*models.File, error)

	// GetByName returns a copy of the named file or common.ErrorNotFound.
	GetByName(ctx context.Context, name string) (*models.File, error)
}
