package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order on startup. Each statement is idempotent so
// a restart against an existing database is a no-op.
//
// tasks.due_meeting_id carries no foreign key: the meeting reference is
// validated by the task service at creation and reassignment, and deleting a
// meeting leaves its tasks in place with a dangling reference.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		owner_id BIGINT REFERENCES accounts(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_owner ON accounts(owner_id)`,
	`CREATE TABLE IF NOT EXISTS meetings (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		scheduled_time TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		owner_id BIGINT NOT NULL REFERENCES accounts(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_meetings_owner ON meetings(owner_id)`,
	`CREATE TABLE IF NOT EXISTS meeting_attendees (
		meeting_id BIGINT NOT NULL REFERENCES meetings(id) ON DELETE CASCADE,
		account_id BIGINT NOT NULL REFERENCES accounts(id),
		PRIMARY KEY (meeting_id, account_id)
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id BIGSERIAL PRIMARY KEY,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		meeting_id BIGINT NOT NULL REFERENCES meetings(id) ON DELETE CASCADE,
		owner_id BIGINT NOT NULL REFERENCES accounts(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_owner ON notes(owner_id)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL,
		due_meeting_id BIGINT NOT NULL,
		owner_id BIGINT NOT NULL REFERENCES accounts(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id)`,
}

// Apply runs all schema migrations against db.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
