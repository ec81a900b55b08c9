package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "k"
	cfg.AdminSecret = "admin-secret"
	cfg.AccessTokenValidityDuration = time.Hour
	cfg.PasswordHashCost = bcrypt.MinCost
	return cfg
}

type recordedActivity struct {
	kind models.ActivityKind
	text string
}

// fakeRecorder captures appended activity.
type fakeRecorder struct {
	mu      sync.Mutex
	entries []recordedActivity
	err     error
}

func (f *fakeRecorder) Append(ctx context.Context, kind models.ActivityKind, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, recordedActivity{kind, text})
	return f.err
}

// failingUsers returns err from every call.
type failingUsers struct{ err error }

func (f failingUsers) Create(context.Context, *models.User) error { return f.err }
func (f failingUsers) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, f.err
}
func (f failingUsers) UpdatePassword(context.Context, string, string) error { return f.err }
func (f failingUsers) UpdatePasswordIf(context.Context, string, users.PasswordCheck, string) error {
	return f.err
}

// failingFiles returns err from every call.
type failingFiles struct{ err error }

func (f failingFiles) Create(context.Context, *models.File) error { return f.err }
func (f failingFiles) List(context.Context) ([]*models.File, error) {
	return nil, f.err
}
func (f failingFiles) GetByName(context.Context, string) (*models.File, error) {
	return nil, f.err
}
