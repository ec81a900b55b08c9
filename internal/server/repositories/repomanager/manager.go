package repomanager

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/server/repositories/files"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/users"
)

// RepositoryManager vends the persistent stores of one backend.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Files() files.Repository
	Close() error
}
