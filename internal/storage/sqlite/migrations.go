package sqlite

import "database/sql"

// schema sets up the memo cache. It runs on startup and is idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS plan_cache (
    key TEXT PRIMARY KEY,
    id TEXT NOT NULL,
    style TEXT NOT NULL,
    budget REAL NOT NULL,
    savings TEXT,
    allocation TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_plan_cache_created_at ON plan_cache(created_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
