package db

import (
	"context"
	"fmt"
)

// Collections hold JSON-encoded nested documents (tags, sections, responses)
// and UnixMilli timestamps. There is deliberately no foreign-key
// enforcement: references between collections are weak, matching the
// document-store contract.
var schemaStmts = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		tags TEXT NOT NULL DEFAULT '[]',
		ord INTEGER NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created INTEGER NOT NULL,
		updated INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_ord ON jobs(ord)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status)`,
	`CREATE TABLE IF NOT EXISTS candidates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		stage TEXT NOT NULL DEFAULT 'applied',
		job_id TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		resume TEXT NOT NULL DEFAULT '',
		skills TEXT NOT NULL DEFAULT '[]',
		rating INTEGER,
		source TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created INTEGER NOT NULL,
		updated INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_stage ON candidates(stage)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_job ON candidates(job_id)`,
	`CREATE TABLE IF NOT EXISTS timeline (
		id TEXT PRIMARY KEY,
		candidate_id TEXT NOT NULL,
		type TEXT NOT NULL,
		from_stage TEXT NOT NULL DEFAULT '',
		to_stage TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		created INTEGER NOT NULL,
		created_by TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_timeline_candidate ON timeline(candidate_id, created DESC)`,
	`CREATE TABLE IF NOT EXISTS assessments (
		id TEXT PRIMARY KEY,
		job_id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		sections TEXT NOT NULL DEFAULT '[]',
		created INTEGER NOT NULL,
		updated INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS assessment_responses (
		id TEXT PRIMARY KEY,
		assessment_id TEXT NOT NULL,
		candidate_id TEXT NOT NULL DEFAULT '',
		responses TEXT NOT NULL DEFAULT '{}',
		completed INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_responses_assessment ON assessment_responses(assessment_id)`,
}

// EnsureSchema creates the collection tables if they do not exist yet. The
// store has no migration mechanism beyond a version bump that wipes and
// recreates, so idempotent creation is all that is needed.
func EnsureSchema(ctx context.Context, d *DB) error {
	for _, stmt := range schemaStmts {
		if _, err := d.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
