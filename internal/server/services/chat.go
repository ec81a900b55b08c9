package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/chat"
)

// SendRequest is a new chat message. ReplyTo is the id of an earlier message,
// zero for none.
type SendRequest struct {
	User    string
	Avatar  string
	Text    string
	Sent    bool
	File    *models.ChatFile
	ReplyTo int64
}

type ChatService struct {
	repo   chat.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewChatService(repo chat.Repository, logger logging.Logger) *ChatService {
	return &ChatService{
		repo:   repo,
		logger: logger.With("module", "chat"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Send stores the message. A reply carries a snapshot of the message it
// answers, without that message's own reply.
func (s *ChatService) Send(ctx context.Context, req SendRequest) (*models.ChatMessage, error) {
	if req.Text == "" && req.File == nil {
		return nil, common.ErrorValidation
	}

	msg := &models.ChatMessage{
		User:   req.User,
		Avatar: req.Avatar,
		Text:   req.Text,
		Time:   s.now(),
		Sent:   req.Sent,
		File:   req.File,
	}

	if req.ReplyTo != 0 {
		parent, err := s.repo.Get(ctx, req.ReplyTo)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrorNotFound
			}
			s.logger.Error(ctx, "get reply target", "id", req.ReplyTo, "error", err)
			return nil, common.ErrorInternal
		}
		parent.ReplyTo = nil
		msg.ReplyTo = parent
	}

	stored, err := s.repo.Add(ctx, msg)
	if err != nil {
		s.logger.Error(ctx, "add message", "error", err)
		return nil, common.ErrorInternal
	}
	return stored, nil
}

// Messages returns the conversation, oldest first.
func (s *ChatService) Messages(ctx context.Context) ([]*models.ChatMessage, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "list messages", "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}
