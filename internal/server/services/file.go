package services

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/files"
)

// UploadRequest carries the fields accepted by AddFile.
type UploadRequest struct {
	Name          string
	Description   string
	EncryptedData string
	UserID        string
	// Admin marks uploads made with an admin token.
	Admin bool
}

// FileService validates uploads and fronts the file store. Store errors are
// reduced to common.ErrorAlreadyExists, common.ErrorNotFound or
// common.ErrorInternal so callers can tell a conflict from an outage.
type FileService struct {
	repo      files.Repository
	describer Describer
	activity  ActivityRecorder
	logger    logging.Logger
	now       func() time.Time
	newID     func() string
}

func NewFileService(repo files.Repository, describer Describer, activity ActivityRecorder, logger logging.Logger) *FileService {
	if describer == nil {
		describer = FallbackDescriber{}
	}
	return &FileService{
		repo:      repo,
		describer: describer,
		activity:  activity,
		logger:    logger.With("module", "files"),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.Must(uuid.NewV7()).String() },
	}
}

// AddFile stores a new file. Name and EncryptedData are required and
// EncryptedData must be standard base64.
func (s *FileService) AddFile(ctx context.Context, req UploadRequest) (*models.File, error) {
	if req.Name == "" || req.EncryptedData == "" {
		return nil, common.ErrorValidation
	}
	if _, err := base64.StdEncoding.DecodeString(req.EncryptedData); err != nil {
		return nil, common.ErrorValidation
	}

	description := req.Description
	if description == "" {
		d, err := s.describer.Describe(ctx, req.Name)
		if err != nil {
			s.logger.Warn(ctx, "describe failed", "name", req.Name, "error", err)
			d, _ = FallbackDescriber{}.Describe(ctx, req.Name)
		}
		description = d
	}

	file := &models.File{
		ID:            s.newID(),
		UserID:        req.UserID,
		Name:          req.Name,
		Description:   description,
		EncryptedData: req.EncryptedData,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, file); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "create file", "name", req.Name, "error", err)
		return nil, common.ErrorInternal
	}

	text := "File uploaded: " + file.Name
	if req.Admin {
		text = "Admin uploaded file: " + file.Name
	}
	if s.activity != nil {
		if err := s.activity.Append(ctx, models.ActivityFileUpload, text); err != nil {
			s.logger.Warn(ctx, "activity append failed", "error", err)
		}
	}

	return file, nil
}

// GetFiles returns all files in upload order.
func (s *FileService) GetFiles(ctx context.Context) ([]*models.File, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "list files", "error", err)
		return nil, common.ErrorInternal
	}
	return list, nil
}

// GetFile returns the file called name or common.ErrorNotFound.
func (s *FileService) GetFile(ctx context.Context, name string) (*models.File, error) {
	if name == "" {
		return nil, common.ErrorValidation
	}
	f, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "get file", "name", name, "error", err)
		return nil, common.ErrorInternal
	}
	return f, nil
}
