package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spolify/spolify/internal/models"
)

// currentUserKey is the single session-scope key the auth gate reads.
const currentUserKey = "currentUser"

// SessionStore holds the session marker. Presence of a stored user is the
// router's auth-gate signal; the backend's session cookie remains the source
// of truth and a 401 clears the marker.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a SessionStore over the given database.
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// SaveUser records the marker after a successful login or session restore.
func (s *SessionStore) SaveUser(user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	query := `
		INSERT INTO session (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, currentUserKey, string(data), time.Now()); err != nil {
		return fmt.Errorf("failed to save session marker: %w", err)
	}

	return nil
}

// CurrentUser returns the stored user, or nil when no marker is present.
func (s *SessionStore) CurrentUser() (*models.User, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM session WHERE key = ?", currentUserKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session marker: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(value), &user); err != nil {
		return nil, fmt.Errorf("failed to decode session marker: %w", err)
	}

	return &user, nil
}

// Clear destroys the marker, on logout or on any 401 from the backend.
func (s *SessionStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM session WHERE key = ?", currentUserKey); err != nil {
		return fmt.Errorf("failed to clear session marker: %w", err)
	}
	return nil
}

// Active implements router.SessionChecker.
func (s *SessionStore) Active() bool {
	user, err := s.CurrentUser()
	return err == nil && user != nil
}
