package posts

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/framezhq/framez/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func postRows(posts ...models.Post) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "content", "image_url", "image_storage_id", "created_at"})
	for _, p := range posts {
		rows.AddRow(p.ID, p.UserID, p.Content, p.ImageURL, p.ImageStorageID, p.CreatedAt)
	}
	return rows
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+posts`).
		WithArgs("p-1", "u-1", "hello", "", "", int64(1700000000000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := &models.Post{ID: "p-1", UserID: "u-1", Content: "hello", CreatedAt: 1700000000000}
	got, err := repo.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "p-1" {
		t.Fatalf("unexpected post: %+v", got)
	}
}

func TestListAll_OrderedNewestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*\s+FROM\s+posts\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC`).
		WillReturnRows(postRows(
			models.Post{ID: "p-2", UserID: "u-1", Content: "second", CreatedAt: 2000},
			models.Post{ID: "p-1", UserID: "u-1", Content: "first", CreatedAt: 1000},
		))

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p-2" || got[1].ID != "p-1" {
		t.Fatalf("unexpected posts: %+v", got)
	}
}

func TestListByUser_FiltersByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*\s+FROM\s+posts\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs("u-1").
		WillReturnRows(postRows(models.Post{ID: "p-1", UserID: "u-1", Content: "mine", CreatedAt: 1000}))

	got, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 1 || got[0].UserID != "u-1" {
		t.Fatalf("unexpected posts: %+v", got)
	}
}

func TestListAll_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*\s+FROM\s+posts`).
		WillReturnRows(postRows())

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestListAll_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*\s+FROM\s+posts`).
		WillReturnError(errors.New("db down"))

	if _, err := repo.ListAll(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
