package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framezhq/framez/internal/common"
	"github.com/framezhq/framez/internal/dbx"
	"github.com/framezhq/framez/internal/password"
	"github.com/framezhq/framez/internal/server/config"
	"github.com/framezhq/framez/internal/server/models"
	postsrepo "github.com/framezhq/framez/internal/server/repositories/posts"
	"github.com/framezhq/framez/internal/server/repositories/repomanager"
	usersrepo "github.com/framezhq/framez/internal/server/repositories/users"
)

// --- fakes ---

// fakeUsersRepo keeps users in a map keyed by email, close enough to the
// real store for service-level behavior.
type fakeUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User

	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byEmail: map[string]*models.User{},
		byID:    map[string]*models.User{},
	}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type fakePostsRepo struct {
	posts []models.Post

	createErr error
	listErr   error
}

func (f *fakePostsRepo) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	// prepend: fakes keep newest-first ordering like the indexed queries do
	f.posts = append([]models.Post{*p}, f.posts...)
	return p, nil
}

func (f *fakePostsRepo) ListAll(ctx context.Context) ([]models.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Post{}, f.posts...), nil
}

func (f *fakePostsRepo) ListByUser(ctx context.Context, userID string) ([]models.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Post{}
	for _, p := range f.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	u usersrepo.Repository
	p postsrepo.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Posts(db dbx.DBTX) postsrepo.Repository      { return m.p }

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

func newAuthService(rm repomanager.RepositoryManager) *AuthService {
	cfg := &config.Config{PasswordScheme: "sha256"}
	return NewAuthService(nil, rm, cfg)
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	users := newFakeUsersRepo()
	svc := newAuthService(&fakeRepoManager{u: users, p: &fakePostsRepo{}})

	got, err := svc.Register(context.Background(), "a@x.com", "Alice", "secret1")
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, "Alice", got.Name)
	assert.Empty(t, got.Avatar)

	stored := users.byEmail["a@x.com"]
	require.NotNil(t, stored)
	assert.Equal(t, password.Hash("secret1"), stored.PasswordHash)
	assert.NotZero(t, stored.CreatedAt)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUsersRepo()
	svc := newAuthService(&fakeRepoManager{u: users, p: &fakePostsRepo{}})

	_, err := svc.Register(context.Background(), "a@x.com", "Alice", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "a@x.com", "Impostor", "other")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestRegister_InsertRaceStillMapsToDuplicate(t *testing.T) {
	// The pre-check passes (repo empty for the lookup) but the insert
	// hits the unique index, simulating a concurrent registration.
	users := newFakeUsersRepo()
	users.byEmail["a@x.com"] = &models.User{ID: "u-0", Email: "a@x.com"}
	delete(users.byID, "u-0")
	// force the pre-check to miss
	pre := *users
	pre.byEmail = map[string]*models.User{}
	svc := newAuthService(&fakeRepoManager{u: &preCheckMissRepo{miss: &pre, insert: users}, p: &fakePostsRepo{}})

	_, err := svc.Register(context.Background(), "a@x.com", "Alice", "secret1")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

// preCheckMissRepo answers lookups from an empty view but inserts against
// the populated one.
type preCheckMissRepo struct {
	miss   *fakeUsersRepo
	insert *fakeUsersRepo
}

func (r *preCheckMissRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	return r.insert.Create(ctx, u)
}
func (r *preCheckMissRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.miss.GetByEmail(ctx, email)
}
func (r *preCheckMissRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.miss.GetByID(ctx, id)
}

func TestLogin_Success_ReturnsSanitizedRecord(t *testing.T) {
	users := newFakeUsersRepo()
	svc := newAuthService(&fakeRepoManager{u: users, p: &fakePostsRepo{}})

	registered, err := svc.Register(context.Background(), "a@x.com", "Alice", "secret1")
	require.NoError(t, err)

	got, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, registered.ID, got.ID)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, "Alice", got.Name)
}

func TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	users := newFakeUsersRepo()
	svc := newAuthService(&fakeRepoManager{u: users, p: &fakePostsRepo{}})

	_, err := svc.Register(context.Background(), "a@x.com", "Alice", "secret1")
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), "ghost@x.com", "secret1")
	_, errWrongPw := svc.Login(context.Background(), "a@x.com", "wrong")

	assert.ErrorIs(t, errUnknown, common.ErrorUnauthorized)
	assert.ErrorIs(t, errWrongPw, common.ErrorUnauthorized)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLogin_StorageErrorPassesThrough(t *testing.T) {
	users := newFakeUsersRepo()
	users.getErr = errors.New("connection refused")
	svc := newAuthService(&fakeRepoManager{u: users, p: &fakePostsRepo{}})

	_, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestLogin_IncludesAvatar(t *testing.T) {
	users := newFakeUsersRepo()
	u := &models.User{ID: "u-1", Email: "a@x.com", Name: "Alice",
		PasswordHash: password.Hash("secret1"), Avatar: "https://cdn/a.png"}
	users.byEmail[u.Email] = u
	users.byID[u.ID] = u

	svc := newAuthService(&fakeRepoManager{u: users, p: &fakePostsRepo{}})

	got, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/a.png", got.Avatar)
}

func TestGetUserByID_NullNotFailure(t *testing.T) {
	users := newFakeUsersRepo()
	svc := newAuthService(&fakeRepoManager{u: users, p: &fakePostsRepo{}})

	got, err := svc.GetUserByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetUserByID_Found(t *testing.T) {
	users := newFakeUsersRepo()
	svc := newAuthService(&fakeRepoManager{u: users, p: &fakePostsRepo{}})

	registered, err := svc.Register(context.Background(), "a@x.com", "Alice", "secret1")
	require.NoError(t, err)

	got, err := svc.GetUserByID(context.Background(), registered.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alice", got.Name)
}

func TestRegister_BcryptScheme(t *testing.T) {
	users := newFakeUsersRepo()
	cfg := &config.Config{PasswordScheme: "bcrypt"}
	svc := NewAuthService(nil, &fakeRepoManager{u: users, p: &fakePostsRepo{}}, cfg)

	_, err := svc.Register(context.Background(), "a@x.com", "Alice", "secret1")
	require.NoError(t, err)

	stored := users.byEmail["a@x.com"]
	assert.True(t, len(stored.PasswordHash) > 0 && stored.PasswordHash[0] == '$')

	// login still works against the hardened digest
	_, err = svc.Login(context.Background(), "a@x.com", "secret1")
	assert.NoError(t, err)
}
