package activity

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// MemoryRepository is a bounded ring of entries. Once limit entries are held
// the oldest one is overwritten. A limit of zero or less keeps everything.
type MemoryRepository struct {
	mu      sync.RWMutex
	limit   int
	entries []models.Activity
	head    int // index of the oldest entry once the ring is full
}

func NewMemoryRepository(limit int) *MemoryRepository {
	r := &MemoryRepository{limit: limit}
	if limit > 0 {
		r.entries = make([]models.Activity, 0, limit)
	}
	return r
}

func (r *MemoryRepository) Append(ctx context.Context, entry models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limit <= 0 || len(r.entries) < r.limit {
		r.entries = append(r.entries, entry)
		return nil
	}

	r.entries[r.head] = entry
	r.head = (r.head + 1) % r.limit
	return nil
}

func (r *MemoryRepository) ReadAll(ctx context.Context) ([]models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.entries)
	result := make([]models.Activity, 0, n)
	for i := 0; i < n; i++ {
		// walk backwards from the newest entry
		idx := (r.head - 1 - i + 2*n) % n
		result = append(result, r.entries[idx])
	}
	return result, nil
}

// Len reports the number of retained entries.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
