package repositories

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the tables this service owns.
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS search_history (
		id           BIGSERIAL PRIMARY KEY,
		mode         TEXT NOT NULL,
		origin_lat   DOUBLE PRECISION NOT NULL,
		origin_lng   DOUBLE PRECISION NOT NULL,
		tags         TEXT NOT NULL DEFAULT '',
		result_count INTEGER NOT NULL,
		duration_ms  BIGINT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: create search_history table: %w", err)
	}

	return nil
}
