package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"homescout/client-app/pkg/model"
)

// SessionStore defines the interface for persisting the active user session.
// The table holds at most one row; the password hash is never part of it.
type SessionStore interface {
	SessionSave(user *model.User) error
	SessionLoad() (*model.User, error)
	SessionClear() error
}

// SessionStorage implements the SessionStore interface.
type SessionStorage struct {
	storage *Storage
}

// NewSessionStorage creates a new SessionStorage instance.
func NewSessionStorage(storage *Storage) *SessionStorage {
	return &SessionStorage{storage: storage}
}

// SessionSave persists the given user as the active session.
func (s *SessionStorage) SessionSave(user *model.User) error {
	db := s.storage.GetDatabase()

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session user: %w", err)
	}

	_, err = db.Exec(
		"INSERT INTO session (id, user_json, updated) VALUES (1, ?, ?) ON CONFLICT(id) DO UPDATE SET user_json = excluded.user_json, updated = excluded.updated",
		string(data), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// SessionLoad returns the persisted active user, or nil when no session exists.
func (s *SessionStorage) SessionLoad() (*model.User, error) {
	db := s.storage.GetDatabase()

	var data string
	err := db.QueryRow("SELECT user_json FROM session WHERE id = 1").Scan(&data)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var user model.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session user: %w", err)
	}
	return &user, nil
}

// SessionClear removes the active session row.
func (s *SessionStorage) SessionClear() error {
	db := s.storage.GetDatabase()
	if _, err := db.Exec("DELETE FROM session WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
