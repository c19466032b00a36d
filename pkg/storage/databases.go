// Package storage provides functionality for persisting and retrieving
// HomeScout client state: the mock users table, the active session, the
// guest favorites set and miscellaneous settings.
// This file handles the general SQL database interfaces and schemas.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"homescout/client-app/pkg/log"
)

// isNoRows reports whether the error is the no-rows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// DBDriver represents the type of database driver
type DBDriver string

const (
	SQLite DBDriver = "sqlite"
)

// Database interface defines common database operations
type Database interface {
	Open(dataSourceName string) error
	Close() error
	Begin() error
	Commit() error
	Rollback() error
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	InitSchema() error
}

// NewDatabase creates a new Database instance based on the specified driver
func NewDatabase(driver DBDriver, logger *log.Logger) (Database, error) {
	switch driver {
	case SQLite:
		return &SQLiteDatabase{BaseDatabase: BaseDatabase{logger: logger}}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// BaseDatabase provides a base implementation of some Database methods
type BaseDatabase struct {
	db     *sql.DB
	tx     *sql.Tx
	logger *log.Logger
}

// Begin starts a new transaction
func (b *BaseDatabase) Begin() error {
	tx, err := b.db.Begin()
	if err != nil {
		b.logger.Error(context.Background(), "Failed to begin transaction", log.Fields{"error": err})
		return err
	}
	b.tx = tx
	return nil
}

// Commit commits the current transaction
func (b *BaseDatabase) Commit() error {
	if b.tx == nil {
		b.logger.Error(context.Background(), "No active transaction to commit", nil)
		return fmt.Errorf("no active transaction")
	}
	err := b.tx.Commit()
	if err != nil {
		b.logger.Error(context.Background(), "Failed to commit transaction", log.Fields{"error": err})
		return err
	}
	b.tx = nil
	return nil
}

// Rollback rolls back the current transaction
func (b *BaseDatabase) Rollback() error {
	if b.tx == nil {
		return nil
	}
	err := b.tx.Rollback()
	if err != nil {
		b.logger.Error(context.Background(), "Failed to rollback transaction", log.Fields{"error": err})
		return err
	}
	b.tx = nil
	return nil
}

// Exec executes a query without returning any rows
func (b *BaseDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	b.logger.Debug(context.Background(), "Executing query", log.Fields{"query": query})
	if b.tx != nil {
		return b.tx.Exec(query, args...)
	}
	return b.db.Exec(query, args...)
}

// Query executes a query that returns rows
func (b *BaseDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	b.logger.Debug(context.Background(), "Querying", log.Fields{"query": query})
	return b.db.Query(query, args...)
}

// QueryRow executes a query that is expected to return at most one row
func (b *BaseDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return b.db.QueryRow(query, args...)
}

// InitSchema initializes the database schema
func (b *BaseDatabase) InitSchema() error {
	b.logger.Info(context.Background(), "Initializing database schema", nil)

	_, err := b.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			profile_pic TEXT NOT NULL DEFAULT '',
			password_hash BLOB NOT NULL,
			created DATETIME NOT NULL,
			updated DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			user_json TEXT NOT NULL,
			updated DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS guest_favorites (
			property_id TEXT PRIMARY KEY,
			created DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		b.logger.Error(context.Background(), "Failed to create tables", log.Fields{"error": err})
		return fmt.Errorf("failed to create tables: %w", err)
	}
	b.logger.Info(context.Background(), "Database schema initialized successfully", nil)
	return nil
}
