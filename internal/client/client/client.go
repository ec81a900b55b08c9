package client

import (
	"context"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

type Client interface {
	Health(ctx context.Context) error
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) error
	AdminLogin(ctx context.Context, secret string) error
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	ListFiles(ctx context.Context) ([]models.File, error)
	Upload(ctx context.Context, u models.Upload) error
	Download(ctx context.Context, name string) (*models.File, error)
	Activity(ctx context.Context) ([]models.Activity, error)
	LogActivity(ctx context.Context, kind, text string) error
	ChatMessages(ctx context.Context) ([]models.ChatMessage, error)
	SendChat(ctx context.Context, d models.ChatDraft) (*models.ChatMessage, error)

	Token() string
	SetToken(token string)
}
