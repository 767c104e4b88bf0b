package repomanager

import (
	"context"
	"database/sql"

	"github.com/framezhq/framez/internal/dbx"
	"github.com/framezhq/framez/internal/server/repositories/posts"
	"github.com/framezhq/framez/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
}
