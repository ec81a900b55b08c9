package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/activity"
)

// SystemInitText is the entry appended when the server starts.
const SystemInitText = "System initialized. Awaiting first file upload."

// ActivitySink receives a copy of every appended entry.
type ActivitySink interface {
	Publish(ctx context.Context, entry models.Activity) error
}

// ActivityService appends to and reads the activity log. When a sink is set
// each entry is also forwarded to it; sink failures are only logged.
type ActivityService struct {
	repo   activity.Repository
	sink   ActivitySink
	logger logging.Logger
	now    func() time.Time
}

func NewActivityService(repo activity.Repository, sink ActivitySink, logger logging.Logger) *ActivityService {
	return &ActivityService{
		repo:   repo,
		sink:   sink,
		logger: logger.With("module", "activity"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Append stamps the entry with the current time and stores it.
func (s *ActivityService) Append(ctx context.Context, kind models.ActivityKind, text string) error {
	if !kind.Valid() || text == "" {
		return common.ErrorValidation
	}

	entry := models.Activity{Type: kind, Text: text, Time: s.now()}
	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error(ctx, "append activity", "error", err)
		return common.ErrorInternal
	}

	if s.sink != nil {
		if err := s.sink.Publish(ctx, entry); err != nil {
			s.logger.Warn(ctx, "activity publish failed", "type", string(kind), "error", err)
		}
	}
	return nil
}

// ReadAll returns the retained entries, most recent first.
func (s *ActivityService) ReadAll(ctx context.Context) ([]models.Activity, error) {
	list, err := s.repo.ReadAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "read activity", "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}
