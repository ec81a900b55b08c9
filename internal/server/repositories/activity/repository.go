// Package activity holds the append-only activity log.
package activity

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

type Repository interface {
	// Append stores a copy of entry.
	Append(ctx context.Context, entry models.Activity) error

	// ReadAll returns every retained entry, most recent first.
	ReadAll(ctx context.Context) ([]models.Activity, error)
}
