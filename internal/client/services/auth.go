// Package services contains application services for the Framez client.
// This file defines the authentication service: register, login, logout,
// session restore and a server liveness check.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/framezhq/framez/internal/client/api"
	"github.com/framezhq/framez/internal/client/models"
	"github.com/framezhq/framez/internal/client/store"
)

// Validation failures reported before any request leaves the device.
var (
	ErrFieldsRequired   = errors.New("please fill in all fields")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

const minPasswordLength = 6

// AuthService defines account operations for the CLI.
//
// Contract:
//   - Register: create an account on the server and persist the session.
//   - Login: authenticate and persist the session.
//   - Logout: drop the local session; the server keeps no state to revoke.
//   - Current: return the locally stored user, nil when logged out.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) *models.User
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client
// and a local SQL database for the session record.
type authService struct {
	client api.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client api.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getSessionStore() *store.SessionStore {
	return store.NewSessionStore(a.db)
}

// Register validates input locally, creates the account on the server and
// stores the returned user as the active session.
func (a *authService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	if email == "" || name == "" || password == "" {
		return nil, ErrFieldsRequired
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	user, err := a.client.Register(ctx, email, name, password)
	if err != nil {
		return nil, err
	}

	if err := a.getSessionStore().Save(ctx, user); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return user, nil
}

// Login authenticates against the server and stores the returned user as
// the active session.
func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrFieldsRequired
	}

	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := a.getSessionStore().Save(ctx, user); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return user, nil
}

// Logout wipes the local session. Nothing is sent to the server.
func (a *authService) Logout(ctx context.Context) error {
	return a.getSessionStore().Clear(ctx)
}

// Current returns the locally stored user, or nil when no session exists.
func (a *authService) Current(ctx context.Context) *models.User {
	return a.getSessionStore().Load(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
