package ports

import (
	"context"

	"mood-dining-service/internal/domain"
)

// One completed search, recorded for later inspection.
type SearchRecord struct {
	Mode        string
	Origin      domain.Coordinate
	Tags        []string
	ResultCount int
	DurationMs  int64
}

// Port: a boundary for persisting completed searches. Recording is
// best-effort; failures must never affect the search response.
type SearchHistory interface {
	Record(ctx context.Context, rec SearchRecord) error
}
