package services

import (
	"math"
	"sort"
	"strings"

	"mood-dining-service/internal/domain"
)

// MaxResults caps the final list returned to the caller.
const MaxResults = 20

// Rating differences below ratingEpsilon and distance differences below
// distanceEpsilonMeters are treated as ties, so noise in the source rating
// scale and small distance deltas cannot dominate the ordering.
const (
	ratingEpsilon         = 0.1
	distanceEpsilonMeters = 100
)

// Aggregate merges hits collected across station searches into the final
// list: duplicates removed first-occurrence-wins, ranked, capped at
// MaxResults. Applying it twice yields the same result as once.
func Aggregate(hits []domain.RestaurantHit, tags []string) []domain.RestaurantHit {
	out := dedupeHits(hits)
	rankHits(out, tags)
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}

// DedupeTruncate removes duplicates and applies the result cap while keeping
// the collaborator's native order. Used by radius mode, where no station
// annotation applies and re-ranking would discard upstream relevance.
func DedupeTruncate(hits []domain.RestaurantHit) []domain.RestaurantHit {
	out := dedupeHits(hits)
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}

// dedupeHits keeps the first occurrence of each venue, so a venue near
// multiple stations stays attributed to the station processed earliest.
func dedupeHits(hits []domain.RestaurantHit) []domain.RestaurantHit {
	seen := make(map[string]struct{}, len(hits))
	out := make([]domain.RestaurantHit, 0, len(hits))
	for _, h := range hits {
		if _, ok := seen[h.Key()]; ok {
			continue
		}
		seen[h.Key()] = struct{}{}
		out = append(out, h)
	}
	return out
}

// rankHits sorts in place: higher rating, then smaller distance from the
// user, then a name matching one of the query tags, preserving input order
// among full ties.
func rankHits(hits []domain.RestaurantHit, tags []string) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hitLess(hits[i], hits[j], tags)
	})
}

func hitLess(a, b domain.RestaurantHit, tags []string) bool {
	if math.Abs(a.Rating-b.Rating) >= ratingEpsilon {
		return a.Rating > b.Rating
	}

	da := comparableDistance(a.DistanceFromUser)
	db := comparableDistance(b.DistanceFromUser)
	if abs(da-db) >= distanceEpsilonMeters {
		return da < db
	}

	ta := nameMatchesAnyTag(a.Name, tags)
	tb := nameMatchesAnyTag(b.Name, tags)
	if ta != tb {
		return ta
	}

	return false
}

// comparableDistance pushes unknown distances behind every known one.
func comparableDistance(d int) int {
	if d == domain.DistanceUnknown {
		return math.MaxInt32
	}
	return d
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func nameMatchesAnyTag(name string, tags []string) bool {
	lower := strings.ToLower(name)
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(tag)) {
			return true
		}
	}
	return false
}
