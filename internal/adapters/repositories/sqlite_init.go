package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
// AUTOINCREMENT keeps deleted ids from being reused.
func InitSqliteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS queries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		origin_cep TEXT NOT NULL,
		destination_cep TEXT NOT NULL,
		origin_lat REAL NOT NULL,
		origin_lon REAL NOT NULL,
		destination_lat REAL NOT NULL,
		destination_lon REAL NOT NULL,
		distance_km REAL NOT NULL,
		created_at TEXT NOT NULL,
		notes TEXT
	);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("init schema: create queries table: %w", err)
	}

	return nil
}

// Initialize the PostgreSQL database schema.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS queries (
		id BIGSERIAL PRIMARY KEY,
		origin_cep TEXT NOT NULL,
		destination_cep TEXT NOT NULL,
		origin_lat DOUBLE PRECISION NOT NULL,
		origin_lon DOUBLE PRECISION NOT NULL,
		destination_lat DOUBLE PRECISION NOT NULL,
		destination_lon DOUBLE PRECISION NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		created_at TEXT NOT NULL,
		notes TEXT
	);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("init schema: create queries table: %w", err)
	}

	return nil
}
