package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order on startup; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS building_designs (
		id          UUID PRIMARY KEY,
		building_id TEXT NOT NULL,
		name        TEXT NOT NULL,
		facades     JSONB NOT NULL,
		skylight    JSONB,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS building_designs_building_id_idx ON building_designs (building_id)`,
	`CREATE TABLE IF NOT EXISTS city_data (
		name             TEXT PRIMARY KEY,
		solar_radiation  JSONB NOT NULL,
		electricity_rate DOUBLE PRECISION NOT NULL,
		temperature      JSONB NOT NULL DEFAULT '{}'::jsonb,
		humidity         JSONB NOT NULL DEFAULT '{}'::jsonb
	)`,
}

// Migrate creates the tables the repositories expect.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
