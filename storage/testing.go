package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewTestDB creates an in-memory SQLite store for testing
func NewTestDB() (*Storage, func(), error) {
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open test database: %w", err)
	}

	// every new connection to :memory: is a fresh database
	database.SetMaxOpenConns(1)

	if err := migrate(database); err != nil {
		database.Close()
		return nil, nil, err
	}

	cleanup := func() {
		database.Close()
	}

	return &Storage{db: database}, cleanup, nil
}
