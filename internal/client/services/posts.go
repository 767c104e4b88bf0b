package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/framezhq/framez/internal/client/api"
	"github.com/framezhq/framez/internal/client/models"
)

// ErrContentRequired rejects posts whose text is empty after trimming.
var ErrContentRequired = errors.New("please add some text to your post")

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// PostService defines feed operations for the CLI.
//
// Contract:
//   - CreatePost: publish a post, optionally uploading a local image first.
//   - Feed: fetch the global feed, newest first.
//   - UserPosts: fetch one author's posts, newest first.
//
// All methods must honor context cancellation/timeouts.
type PostService interface {
	CreatePost(ctx context.Context, userID, content, imagePath string) (string, error)
	Feed(ctx context.Context) ([]models.Post, error)
	UserPosts(ctx context.Context, userID string) ([]models.Post, error)
}

// postService is the concrete PostService backed by a remote Client.
type postService struct {
	client api.Client
}

// NewPostService constructs a PostService bound to the given API client.
func NewPostService(client api.Client) PostService {
	return &postService{client: client}
}

// CreatePost publishes a post. When imagePath is non-empty the image goes
// through the upload handshake first: mint a presigned URL, PUT the bytes,
// then reference the returned storage key in the create call. The three steps
// are separate requests; a failure before the create call leaves no post.
func (p *postService) CreatePost(ctx context.Context, userID, content, imagePath string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrContentRequired
	}

	var imageStorageID string

	if imagePath != "" {
		data, err := readFile(imagePath)
		if err != nil {
			return "", fmt.Errorf("error reading image: %w", err)
		}

		storageID, uploadURL, err := p.client.GenerateUploadURL(ctx)
		if err != nil {
			return "", fmt.Errorf("error requesting upload url: %w", err)
		}

		if err := p.client.UploadImage(ctx, uploadURL, data, http.DetectContentType(data)); err != nil {
			return "", fmt.Errorf("error uploading image: %w", err)
		}

		imageStorageID = storageID
	}

	id, err := p.client.CreatePost(ctx, userID, content, imageStorageID)
	if err != nil {
		return "", fmt.Errorf("error creating post: %w", err)
	}
	return id, nil
}

// Feed returns the global feed with authors joined.
func (p *postService) Feed(ctx context.Context) ([]models.Post, error) {
	return p.client.AllPosts(ctx)
}

// UserPosts returns the given author's posts.
func (p *postService) UserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	return p.client.UserPosts(ctx, userID)
}
