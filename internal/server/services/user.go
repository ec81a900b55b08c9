// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and password changes and
// issues the JWTs handed back to clients.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/auth"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/users"
)

// Demo account created by SeedDemoUser.
const (
	DemoUserEmail    = "demo@vulnshare.local"
	DemoUserPassword = "password"
	AdminEmail       = "admin"
)

// ActivityRecorder receives the events UserService and FileService emit.
type ActivityRecorder interface {
	Append(ctx context.Context, kind models.ActivityKind, text string) error
}

// UserService provides account operations:
// - AddUser / UserExists / GetUser / VerifyUser / UpdateUserPassword on the store
// - Register / Login / AdminLogin minting access tokens
// - ChangePassword for an authenticated user
type UserService struct {
	repo                        users.Repository
	activity                    ActivityRecorder
	logger                      logging.Logger
	jwtSecret                   []byte
	adminSecret                 []byte
	accessTokenValidityDuration time.Duration
	hashCost                    int
}

// NewUserService constructs a UserService using the user store and server config.
func NewUserService(repo users.Repository, activity ActivityRecorder, logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		repo:                        repo,
		activity:                    activity,
		logger:                      logger.With("module", "users"),
		jwtSecret:                   []byte(cfg.SecretKey),
		adminSecret:                 []byte(cfg.AdminSecret),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		hashCost:                    cfg.PasswordHashCost,
	}
}

// AddUser stores a new account. An email that is already taken is left as is.
func (s *UserService) AddUser(ctx context.Context, email, password string) error {
	hash, err := s.hashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	err = s.repo.Create(ctx, &models.User{Email: email, PasswordHash: hash, CreatedAt: time.Now().UTC()})
	if err != nil && !errors.Is(err, common.ErrorAlreadyExists) {
		return err
	}
	return nil
}

func (s *UserService) UserExists(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetUser returns the stored account or common.ErrorNotFound.
func (s *UserService) GetUser(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}

// VerifyUser reports whether email exists and password matches its hash.
func (s *UserService) VerifyUser(ctx context.Context, email, password string) (bool, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return auth.ComparePassword(user.PasswordHash, password) == nil, nil
}

// UpdateUserPassword replaces the password. Unknown emails are ignored.
func (s *UserService) UpdateUserPassword(ctx context.Context, email, newPassword string) error {
	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, email, hash); err != nil && !errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return nil
}

// hashPassword hashes plaintext at the configured cost. A password bcrypt
// cannot take is reported as common.ErrorValidation wrapping
// auth.ErrPasswordTooLong.
func (s *UserService) hashPassword(plaintext string) (string, error) {
	hash, err := auth.HashPassword(plaintext, s.hashCost)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}
	return hash, err
}

// Register creates the account and returns an access token for it. A taken
// email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", common.ErrorValidation
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return "", err
		}
		s.logger.Error(ctx, "hash password", "error", err)
		return "", common.ErrorInternal
	}

	err = s.repo.Create(ctx, &models.User{Email: email, PasswordHash: hash, CreatedAt: time.Now().UTC()})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "create user", "error", err)
		return "", common.ErrorInternal
	}

	s.record(ctx, models.ActivityUserRegister, "New user registration: "+email)
	return s.generateAccessToken(email, common.RoleUser)
}

// Login verifies the credentials and returns a new access token. Any
// mismatch, including an unknown email, is common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", common.ErrorValidation
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "get user", "error", err)
		return "", common.ErrorInternal
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", common.ErrorUnauthorized
	}

	s.record(ctx, models.ActivityUserLogin, "User logged in: "+email)
	return s.generateAccessToken(email, common.RoleUser)
}

// AdminLogin exchanges the configured admin secret for an admin token. With
// no secret configured every attempt is rejected.
func (s *UserService) AdminLogin(ctx context.Context, secret string) (string, error) {
	if secret == "" {
		return "", common.ErrorValidation
	}
	if len(s.adminSecret) == 0 || subtle.ConstantTimeCompare(s.adminSecret, []byte(secret)) != 1 {
		return "", common.ErrorUnauthorized
	}

	s.record(ctx, models.ActivityAdminLogin, "Admin logged in")
	return s.generateAccessToken(AdminEmail, common.RoleAdmin)
}

// ChangePassword replaces the password of email after checking oldPassword.
// The check and the update happen atomically in the store.
func (s *UserService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return common.ErrorValidation
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return err
		}
		s.logger.Error(ctx, "hash password", "error", err)
		return common.ErrorInternal
	}

	err = s.repo.UpdatePasswordIf(ctx, email, func(current string) error {
		if auth.ComparePassword(current, oldPassword) != nil {
			return common.ErrorUnauthorized
		}
		return nil
	}, hash)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrorNotFound):
		return common.ErrorUnauthorized
	default:
		s.logger.Error(ctx, "update password", "error", err)
		return common.ErrorInternal
	}
}

// SeedDemoUser creates the demo account unless it already exists.
func (s *UserService) SeedDemoUser(ctx context.Context) error {
	return s.AddUser(ctx, DemoUserEmail, DemoUserPassword)
}

// --- helpers below ---

func (s *UserService) generateAccessToken(email, role string) (string, error) {
	token, err := auth.GenerateToken(email, role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

func (s *UserService) record(ctx context.Context, kind models.ActivityKind, text string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Append(ctx, kind, text); err != nil {
		s.logger.Warn(ctx, "activity append failed", "error", err)
	}
}
