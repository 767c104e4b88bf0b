package posts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/framezhq/framez/internal/dbx"
	"github.com/framezhq/framez/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {

	query :=
		`INSERT INTO posts (id, user_id, content, image_url, image_storage_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.UserID, post.Content, post.ImageURL, post.ImageStorageID, post.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.Post, error) {
	query :=
		`SELECT id, user_id, content, image_url, image_storage_id, created_at FROM posts
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collect(rows)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Post, error) {
	query :=
		`SELECT id, user_id, content, image_url, image_storage_id, created_at FROM posts
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]models.Post, error) {
	defer rows.Close()

	result := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.ImageURL, &p.ImageStorageID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
