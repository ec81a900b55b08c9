package chat

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// MemoryRepository numbers messages sequentially from 1.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	messages []*models.ChatMessage
	byID     map[int64]*models.ChatMessage
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, byID: make(map[int64]*models.ChatMessage)}
}

func (r *MemoryRepository) Add(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := msg.Clone()
	m.ID = r.nextID
	r.nextID++

	r.messages = append(r.messages, m)
	r.byID[m.ID] = m
	return m.Clone(), nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (*models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m.Clone(), nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.ChatMessage, 0, len(r.messages))
	for _, m := range r.messages {
		result = append(result, m.Clone())
	}
	return result, nil
}
