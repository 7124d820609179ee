package domain

import "errors"

// Error taxonomy surfaced to callers. Partial failures inside a pipeline
// stage are logged and absorbed, never propagated as errors.
var (
	// No transit station near the origin. A normal condition for rural
	// origins; callers should suggest radius mode instead.
	ErrNoStationFound = errors.New("no transit station found near origin")

	// Every attempt (including retries) against a required collaborator
	// failed. Retryable from the caller's point of view.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// A request precondition was violated. Fails fast, no retry.
	ErrInvalidRequest = errors.New("invalid search request")
)
