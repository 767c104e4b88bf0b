package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/framezhq/framez/internal/client/models"
	"github.com/framezhq/framez/internal/dbx"
)

// sessionKey is the single slot the session table is ever written under.
const sessionKey = "user"

// SessionStore persists the logged-in user between runs as a JSON blob in
// the local SQLite database. At most one record exists at a time.
type SessionStore struct {
	db dbx.DBTX
}

func NewSessionStore(db dbx.DBTX) *SessionStore {
	return &SessionStore{db: db}
}

// Save serializes the user and replaces whatever session was stored before.
func (s *SessionStore) Save(ctx context.Context, user *models.User) error {
	value, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, sessionKey, value)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load returns the stored user, or nil when no session exists. Read and
// parse failures are logged and read as logged out.
func (s *SessionStore) Load(ctx context.Context) *models.User {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, sessionKey).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("error loading session: %v\n", err)
		}
		return nil
	}
	var user models.User
	if err := json.Unmarshal(value, &user); err != nil {
		log.Printf("error parsing stored session: %v\n", err)
		return nil
	}
	return &user
}

// Clear removes the stored session, if any.
func (s *SessionStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, sessionKey)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
