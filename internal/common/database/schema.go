// internal/common/database/schema.go
package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Statements are idempotent and run in order.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS assessment_leads (
		id                   UUID PRIMARY KEY,
		name                 TEXT NOT NULL DEFAULT '',
		email                TEXT NOT NULL,
		phone                TEXT NOT NULL DEFAULT '',
		company              TEXT NOT NULL DEFAULT '',
		locale               TEXT NOT NULL DEFAULT 'en',
		industry             TEXT NOT NULL,
		readiness_score      INTEGER NOT NULL,
		tier                 TEXT NOT NULL,
		response_fingerprint TEXT NOT NULL,
		response             JSONB NOT NULL,
		result               JSONB NOT NULL,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS assessment_leads_email_fingerprint_idx
		ON assessment_leads (email, response_fingerprint, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id          BIGSERIAL PRIMARY KEY,
		entity_type TEXT NOT NULL,
		entity_id   TEXT NOT NULL,
		action      TEXT NOT NULL,
		details     JSONB,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
