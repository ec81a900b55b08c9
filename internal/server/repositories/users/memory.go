package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// MemoryRepository keeps users in a map guarded by a mutex.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*models.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return common.ErrorAlreadyExists
	}

	u := *user
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.users[u.Email] = &u
	return nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (r *MemoryRepository) UpdatePassword(ctx context.Context, email string, passwordHash string) error {
	return r.UpdatePasswordIf(ctx, email, nil, passwordHash)
}

func (r *MemoryRepository) UpdatePasswordIf(ctx context.Context, email string, check PasswordCheck, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return common.ErrorNotFound
	}
	if check != nil {
		if err := check(u.PasswordHash); err != nil {
			return err
		}
	}
	u.PasswordHash = passwordHash
	return nil
}
