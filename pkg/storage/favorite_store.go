package storage

import (
	"fmt"
	"time"
)

// GuestFavoriteStore defines the interface for the guest favorites set,
// the local stand-in for server-side favorites while no user is logged in.
// The primary key gives set semantics: a property id is present at most once.
type GuestFavoriteStore interface {
	FavoritesGet() ([]string, error)
	FavoriteToggle(propertyID string) ([]string, error)
	FavoritesClear() error
}

// GuestFavoriteStorage implements the GuestFavoriteStore interface.
type GuestFavoriteStorage struct {
	storage *Storage
}

// NewGuestFavoriteStorage creates a new GuestFavoriteStorage instance.
func NewGuestFavoriteStorage(storage *Storage) *GuestFavoriteStorage {
	return &GuestFavoriteStorage{storage: storage}
}

// FavoritesGet returns the guest favorites in insertion order.
func (s *GuestFavoriteStorage) FavoritesGet() ([]string, error) {
	db := s.storage.GetDatabase()

	rows, err := db.Query("SELECT property_id FROM guest_favorites ORDER BY created, property_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query guest favorites: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan guest favorite row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating guest favorite rows: %w", err)
	}

	return ids, nil
}

// FavoriteToggle adds the property id if absent, removes it if present, and
// returns the resulting set.
func (s *GuestFavoriteStorage) FavoriteToggle(propertyID string) ([]string, error) {
	db := s.storage.GetDatabase()

	err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer db.Rollback()

	res, err := db.Exec("DELETE FROM guest_favorites WHERE property_id = ?", propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle guest favorite: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if deleted == 0 {
		_, err = db.Exec("INSERT INTO guest_favorites (property_id, created) VALUES (?, ?)", propertyID, time.Now())
		if err != nil {
			return nil, fmt.Errorf("failed to add guest favorite: %w", err)
		}
	}

	if err := db.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.FavoritesGet()
}

// FavoritesClear deletes the whole guest favorites set.
func (s *GuestFavoriteStorage) FavoritesClear() error {
	db := s.storage.GetDatabase()
	if _, err := db.Exec("DELETE FROM guest_favorites"); err != nil {
		return fmt.Errorf("failed to clear guest favorites: %w", err)
	}
	return nil
}
