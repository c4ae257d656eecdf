package db

import (
	"database/sql"
)

func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS documents (
    id          UUID PRIMARY KEY,
    filename    TEXT NOT NULL,
    page_count  INTEGER NOT NULL DEFAULT 0,
    text_units  INTEGER NOT NULL DEFAULT 0,
    chunk_count INTEGER NOT NULL DEFAULT 0,
    summary     TEXT NOT NULL,
    provider    VARCHAR(50) NOT NULL,
    model       VARCHAR(100) NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// ORDER BY created_at DESC for history listing
		`CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at DESC)`,
		// Provider breakdown queries
		`CREATE INDEX IF NOT EXISTS idx_documents_provider ON documents(provider)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown rolls back the database schema.
// Use with caution: this will delete all stored summaries.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_documents_provider`,
		`DROP INDEX IF EXISTS idx_documents_created_at`,
		`DROP TABLE IF EXISTS documents CASCADE`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
