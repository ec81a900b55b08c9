package repomanager

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/server/repositories/files"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory; contents are
// lost on restart.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
	files *files.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users: users.NewMemoryRepository(),
		files: files.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }
func (m *MemoryRepositoryManager) Users() users.Repository               { return m.users }
func (m *MemoryRepositoryManager) Files() files.Repository               { return m.files }
func (m *MemoryRepositoryManager) Close() error                          { return nil }
