package sqlite

import (
	"database/sql"
	"fmt"
)

// migration represents a single database migration
type migration struct {
	version int
	name    string
	up      string
}

// migrations is the ordered list of all database migrations
// Each migration should be idempotent and safe to run multiple times
var migrations = []migration{
	{
		version: 1,
		name:    "create_posts_table",
		up: `
			CREATE TABLE IF NOT EXISTS posts (
				id INTEGER PRIMARY KEY,
				title TEXT NOT NULL,
				slug TEXT NOT NULL DEFAULT '',
				excerpt TEXT NOT NULL DEFAULT '',
				content TEXT NOT NULL DEFAULT '',
				published INTEGER NOT NULL DEFAULT 0,
				published_at TIMESTAMP,
				updated_at TIMESTAMP,
				created_at TIMESTAMP
			);

			CREATE INDEX IF NOT EXISTS idx_posts_published_at
			ON posts(published_at DESC)
			WHERE published_at IS NOT NULL;

			CREATE UNIQUE INDEX IF NOT EXISTS idx_posts_slug
			ON posts(slug)
			WHERE slug <> '';
		`,
	},
	{
		version: 2,
		name:    "create_categories_tables",
		up: `
			CREATE TABLE IF NOT EXISTS categories (
				id INTEGER PRIMARY KEY,
				name TEXT NOT NULL,
				slug TEXT NOT NULL UNIQUE
			);

			CREATE TABLE IF NOT EXISTS post_categories (
				post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
				category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
				sort_order INTEGER NOT NULL DEFAULT 0,
				PRIMARY KEY (post_id, category_id)
			);

			CREATE INDEX IF NOT EXISTS idx_post_categories_category
			ON post_categories(category_id);
		`,
	},
}

// runMigrations executes all pending migrations
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	currentVersion := 0
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, m := range migrations {
		if m.version <= currentVersion {
			continue // Already applied
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", m.version, err)
		}

		_, err = tx.Exec(m.up)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %d (%s): %w", m.version, m.name, err)
		}

		_, err = tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			m.version,
			m.name,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}
	}

	return nil
}
