// Package chat stores chat messages in arrival order.
package chat

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

type Repository interface {
	// Add assigns the next id to msg and stores a copy. The stored message
	// is returned.
	Add(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error)

	// Get returns a copy of the message with the given id or common.ErrorNotFound.
	Get(ctx context.Context, id int64) (*models.ChatMessage, error)

	// List returns copies of all messages, oldest first.
	List(ctx context.Context) ([]*models.ChatMessage, error)
}
