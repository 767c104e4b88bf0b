// Package services contains server-side business logic. This file implements
// AuthService: registration, login, and public profile lookup.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/framezhq/framez/internal/common"
	"github.com/framezhq/framez/internal/password"
	"github.com/framezhq/framez/internal/server/config"
	"github.com/framezhq/framez/internal/server/models"
	"github.com/framezhq/framez/internal/server/repositories/repomanager"
)

// nowMillis is a test seam for the creation timestamp.
var nowMillis = func() int64 { return time.Now().UnixMilli() }

// AuthService provides authentication-related operations:
//   - Register: create a user with a hashed credential
//   - Login: verify credentials and return the sanitized record
//   - GetUserByID: public profile lookup
//
// It never returns the password digest: every success path goes through
// models.User.Public().
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	scheme      password.Scheme
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		scheme:      password.Scheme(cfg.PasswordScheme),
	}
}

// Register creates a new user. A duplicate email fails with
// common.ErrorAlreadyExists whether it is caught by the pre-check or by the
// unique index on insert; the pre-check only exists to answer the common
// case without burning an insert.
func (s *AuthService) Register(ctx context.Context, email, name, plaintext string) (*models.UserPublic, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	digest, err := password.HashWithScheme(plaintext, s.scheme)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: digest,
		CreatedAt:    nowMillis(),
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	// Registration returns {id, email, name} only; the avatar fields cannot
	// be set yet.
	return &models.UserPublic{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

// Login verifies the email/password pair. An unknown email and a wrong
// password both fail with common.ErrorUnauthorized so the caller cannot
// learn which factor was wrong.
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (*models.UserPublic, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return user.Public(), nil
}

// GetUserByID returns the sanitized record, or (nil, nil) when no such user
// exists. Absence is not a failure on this path.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*models.UserPublic, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	return user.Public(), nil
}
