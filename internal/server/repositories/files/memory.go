package files

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// MemoryRepository keeps files in insertion order with a name index.
type MemoryRepository struct {
	mu     sync.RWMutex
	files  []*models.File
	byName map[string]*models.File
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byName: make(map[string]*models.File)}
}

func (r *MemoryRepository) Create(ctx context.Context, file *models.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[file.Name]; ok {
		return common.ErrorAlreadyExists
	}

	f := file.Clone()
	r.files = append(r.files, f)
	r.byName[f.Name] = f
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.File, 0, len(r.files))
	for _, f := range r.files {
		result = append(result, f.Clone())
	}
	return result, nil
}

func (r *MemoryRepository) GetByName(ctx context.Context, name string) (*models.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return f.Clone(), nil
}
