// Package api contains the client-side contract for talking to the Framez
// backend and its HTTP implementation.
//
// Common failure conditions are exposed as sentinel errors that callers can
// match with errors.Is: ErrUnavailable for transport failures, plus the
// shared sentinels from internal/common for API-level rejections.
package api

import (
	"context"
	"errors"

	"github.com/framezhq/framez/internal/client/models"
)

// ErrUnavailable marks transport-level failures: the server could not be
// reached at all, as opposed to rejecting the request.
var ErrUnavailable = errors.New("server unavailable")

// Client is the transport-agnostic surface the CLI services program against.
type Client interface {
	Close() error
	Register(ctx context.Context, email, name, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreatePost(ctx context.Context, userID, content, imageStorageID string) (string, error)
	AllPosts(ctx context.Context) ([]models.Post, error)
	UserPosts(ctx context.Context, userID string) ([]models.Post, error)
	GenerateUploadURL(ctx context.Context) (string, string, error)
	UploadImage(ctx context.Context, uploadURL string, data []byte, contentType string) error
	Ping(ctx context.Context) error
}
