package preferences

import (
	"database/sql"
	"fmt"
	"time"
)

// SQLStore is the SQL-based implementation of the preference Store,
// backed by the tenant's sqlite or libsql database.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates the store and ensures its schema exists
func NewSQLStore(db *sql.DB) (*SQLStore, error) {
	const schema = `
		CREATE TABLE IF NOT EXISTS device_preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		)`

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to ensure device_preferences schema: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// Get retrieves a value by key, returning (nil, nil) when absent
func (s *SQLStore) Get(key string) ([]byte, error) {
	const query = `
		SELECT value
		FROM device_preferences
		WHERE key = ?`

	var value string
	err := s.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("preference read failed for %s: %w", key, err)
	}

	return []byte(value), nil
}

// Set upserts a value by key
func (s *SQLStore) Set(key string, value []byte) error {
	const query = `
		INSERT INTO device_preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := s.db.Exec(query, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("preference write failed for %s: %w", key, err)
	}
	return nil
}

// Remove deletes a key; removing a missing key is not an error
func (s *SQLStore) Remove(key string) error {
	const query = `
		DELETE FROM device_preferences
		WHERE key = ?`

	if _, err := s.db.Exec(query, key); err != nil {
		return fmt.Errorf("preference delete failed for %s: %w", key, err)
	}
	return nil
}
