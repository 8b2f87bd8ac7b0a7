package db

import (
	"database/sql"
	"fmt"
)

// DemoUserID is the account unauthenticated todo requests are scoped to.
// Seeded by migration 2 so the foreign key on todos always resolves.
const DemoUserID = "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11"

// migration is one versioned schema step. Versions apply in order,
// each inside its own transaction, and are recorded in schema_migrations.
type migration struct {
	version int
	name    string
	stmts   []string
}

var migrations = []migration{
	{
		version: 1,
		name:    "create users and todos",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				username TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS todos (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL REFERENCES users(id),
				title TEXT NOT NULL,
				description TEXT,
				completed BOOLEAN NOT NULL DEFAULT 0,
				priority TEXT NOT NULL DEFAULT 'medium',
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			);`,
			`CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos(user_id);`,
		},
	},
	{
		version: 2,
		name:    "seed demo user",
		stmts: []string{
			`INSERT OR IGNORE INTO users (id, username, password_hash, created_at)
			 VALUES ('` + DemoUserID + `', 'demo', '', CURRENT_TIMESTAMP);`,
		},
	},
}

const schemaMigrationsSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Migrate applies pending migrations in version order.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schemaMigrationsSQL); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	current, err := currentVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := apply(db, m); err != nil {
			return err
		}
	}
	return nil
}

func currentVersion(db *sql.DB) (int, error) {
	var v sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(v.Int64), nil
}

func apply(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.version, err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range m.stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d (%s) statement %d: %w", m.version, m.name, i+1, err)
		}
	}
	if _, err := tx.Exec(
		`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name,
	); err != nil {
		return fmt.Errorf("record migration %d: %w", m.version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", m.version, err)
	}
	return nil
}
