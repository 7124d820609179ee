package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"mood-dining-service/internal/ports"
)

// Postgres-backed implementation of the SearchHistory port.
type PostgresSearchHistory struct{ DB *sql.DB }

func NewPostgresSearchHistory(db *sql.DB) *PostgresSearchHistory {
	return &PostgresSearchHistory{DB: db}
}

// Record inserts one completed search.
func (r *PostgresSearchHistory) Record(ctx context.Context, rec ports.SearchRecord) error {
	if r.DB == nil {
		return errors.New("search history: DB is nil")
	}

	query := `
	INSERT INTO search_history (mode, origin_lat, origin_lng, tags, result_count, duration_ms)
	VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.DB.ExecContext(ctx, query,
		rec.Mode,
		rec.Origin.Lat,
		rec.Origin.Lng,
		strings.Join(rec.Tags, ","),
		rec.ResultCount,
		rec.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("record search: insert search_history row: %w", err)
	}

	return nil
}
