package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/framezhq/framez/internal/common"
	"github.com/framezhq/framez/internal/server/blob"
	"github.com/framezhq/framez/internal/server/models"
	"github.com/framezhq/framez/internal/server/repositories/repomanager"
)

// PostService provides the feed operations: post creation, the global feed
// with author join, per-user feeds, and upload URL minting.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blob.Storage
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager, blobs blob.Storage) *PostService {
	return &PostService{db: db, repomanager: m, blobs: blobs}
}

// CreatePost inserts a new post and returns its id. If imageStorageID is
// set, the fetch URL is resolved once now and stored redundantly on the
// post; a blob that fails to resolve yields a post without an image URL
// rather than a failure. The author id is not validated for existence.
func (s *PostService) CreatePost(ctx context.Context, userID, content, imageStorageID string) (string, error) {
	post := &models.Post{
		ID:             uuid.NewString(),
		UserID:         userID,
		Content:        content,
		ImageStorageID: imageStorageID,
		CreatedAt:      nowMillis(),
	}

	if url, ok := post.ImageSource().Resolve(ctx, s.blobs); ok {
		post.ImageURL = url
	}

	repo := s.repomanager.Posts(s.db)
	post, err := repo.Create(ctx, post)
	if err != nil {
		return "", fmt.Errorf("error creating post: %w", err)
	}

	return post.ID, nil
}

// GetAllPosts returns every post newest-first, each joined with its author's
// public fields. An author whose record no longer resolves yields User ==
// nil. An avatar stored only as a blob reference is resolved lazily here and
// not written back to the user record.
func (s *PostService) GetAllPosts(ctx context.Context) ([]models.PostWithAuthor, error) {
	postRepo := s.repomanager.Posts(s.db)
	userRepo := s.repomanager.Users(s.db)

	posts, err := postRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}

	// Per-call author cache: the feed is typically dominated by a handful
	// of authors and each user lookup is a round trip.
	authors := make(map[string]*models.PostAuthor)

	result := make([]models.PostWithAuthor, 0, len(posts))
	for _, post := range posts {
		author, cached := authors[post.UserID]
		if !cached {
			author, err = s.lookupAuthor(ctx, userRepo.GetByID, post.UserID)
			if err != nil {
				return nil, err
			}
			authors[post.UserID] = author
		}
		result = append(result, models.PostWithAuthor{Post: post, User: author})
	}

	return result, nil
}

func (s *PostService) lookupAuthor(ctx context.Context, getByID func(context.Context, string) (*models.User, error), userID string) (*models.PostAuthor, error) {
	user, err := getByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error joining author: %w", err)
	}

	author := &models.PostAuthor{Name: user.Name, Avatar: user.Avatar}
	if author.Avatar == "" {
		if url, ok := user.AvatarSource().Resolve(ctx, s.blobs); ok {
			author.Avatar = url
		}
	}
	return author, nil
}

// GetUserPosts returns the user's posts newest-first. An empty userID
// returns an empty slice without touching the store: callers invoke this
// before authentication has completed and rely on the empty result.
func (s *PostService) GetUserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	if userID == "" {
		return []models.Post{}, nil
	}

	repo := s.repomanager.Posts(s.db)
	posts, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

// GenerateUploadURL mints a presigned upload URL and returns it together
// with the storage key the uploaded blob will live under. The caller PUTs
// the object bytes to the URL and then passes the key to CreatePost.
func (s *PostService) GenerateUploadURL(ctx context.Context) (key string, url string, err error) {
	key, url, err = s.blobs.PresignPut(ctx)
	if err != nil {
		return "", "", fmt.Errorf("error generating upload url: %w", err)
	}
	return key, url, nil
}
