package storage

import (
	"fmt"
	"path/filepath"

	"homescout/client-app/pkg/log"
	"homescout/client-app/pkg/model"
)

// Storage represents the main storage implementation.
type Storage struct {
	db Database
	UserStore
	SessionStore
	GuestFavoriteStore
	SettingStore
}

// NewStorage creates a new Storage instance and initializes the database.
func NewStorage(config *model.Config, logger *log.Logger) (*Storage, error) {
	dbDriver, err := validateDBDriver(config.DatabaseType)
	if err != nil {
		return nil, fmt.Errorf("invalid database driver '%s': %w", config.DatabaseType, err)
	}

	db, err := NewDatabase(dbDriver, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database instance: %w", err)
	}

	// Construct the full path for the database file
	dataSourceName := filepath.Join(config.DatabaseDir, config.DatabaseFile)

	// Open the database connection
	if err := db.Open(dataSourceName); err != nil {
		return nil, fmt.Errorf("failed to open database connection '%s': %w", dataSourceName, err)
	}

	storage := &Storage{
		db: db,
	}

	if err := storage.db.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Create stores
	storage.UserStore = NewUserStorage(storage)
	storage.SessionStore = NewSessionStorage(storage)
	storage.GuestFavoriteStore = NewGuestFavoriteStorage(storage)
	storage.SettingStore = NewSettingStorage(storage)

	return storage, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetDatabase returns the database instance
func (s *Storage) GetDatabase() Database {
	return s.db
}

// validateDBDriver checks if the provided driver is supported
func validateDBDriver(driver string) (DBDriver, error) {
	switch DBDriver(driver) {
	case SQLite:
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}
