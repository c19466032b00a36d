package storage

import "fmt"

// SettingStore defines the interface for small key/value settings, such as
// the admin authentication flag.
type SettingStore interface {
	SettingGet(key string) (string, error)
	SettingSet(key, value string) error
	SettingDelete(key string) error
}

// SettingStorage implements the SettingStore interface.
type SettingStorage struct {
	storage *Storage
}

// NewSettingStorage creates a new SettingStorage instance.
func NewSettingStorage(storage *Storage) *SettingStorage {
	return &SettingStorage{storage: storage}
}

// SettingGet returns the value for the key, or an empty string when absent.
func (s *SettingStorage) SettingGet(key string) (string, error) {
	db := s.storage.GetDatabase()

	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to query setting: %w", err)
	}
	return value, nil
}

// SettingSet stores the value under the key, replacing any previous value.
func (s *SettingStorage) SettingSet(key, value string) error {
	db := s.storage.GetDatabase()
	_, err := db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

// SettingDelete removes the key.
func (s *SettingStorage) SettingDelete(key string) error {
	db := s.storage.GetDatabase()
	if _, err := db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}
