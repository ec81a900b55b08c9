package repomanager

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/files"
)

// withFiles overrides the file store of an underlying manager.
type withFiles struct {
	RepositoryManager
	files files.Repository
}

func (w *withFiles) Files() files.Repository { return w.files }

var newS3Client = func(ctx context.Context, o files.S3Options) (files.S3API, error) {
	return files.NewS3Client(ctx, o)
}

// New builds the manager selected by cfg.StoreBackend and, when
// cfg.FileStoreBackend differs, swaps in the requested file store.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	var (
		m   RepositoryManager
		err error
	)

	switch cfg.StoreBackend {
	case config.BackendMemory:
		m = NewMemoryRepositoryManager()
	case config.BackendPostgres:
		m, err = newPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	fb := cfg.FileStoreBackend()
	if fb == cfg.StoreBackend {
		return m, nil
	}

	var fr files.Repository
	switch fb {
	case config.BackendMemory:
		fr = files.NewMemoryRepository()
	case config.BackendPostgres:
		pm, err := newPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			_ = m.Close()
			return nil, err
		}
		m = &closeBoth{RepositoryManager: m, other: pm}
		fr = pm.Files()
	case config.BackendS3:
		client, err := newS3Client(ctx, files.S3Options{
			AccessKey:    cfg.S3RootUser,
			SecretKey:    cfg.S3RootPassword,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
		if err != nil {
			_ = m.Close()
			return nil, err
		}
		fr = files.NewS3Repository(client, cfg.S3Bucket)
	default:
		_ = m.Close()
		return nil, fmt.Errorf("unknown file backend %q", fb)
	}

	return &withFiles{RepositoryManager: m, files: fr}, nil
}

// newPostgres is a seam for tests.
var newPostgres = func(ctx context.Context, dsn string) (RepositoryManager, error) {
	return NewPostgresRepositoryManager(ctx, dsn)
}

// closeBoth migrates and closes a second manager alongside the primary one.
type closeBoth struct {
	RepositoryManager
	other RepositoryManager
}

func (c *closeBoth) RunMigrations(ctx context.Context) error {
	if err := c.RepositoryManager.RunMigrations(ctx); err != nil {
		return err
	}
	return c.other.RunMigrations(ctx)
}

func (c *closeBoth) Close() error {
	return errors.Join(c.RepositoryManager.Close(), c.other.Close())
}
