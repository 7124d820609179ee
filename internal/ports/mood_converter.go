package ports

import "context"

// Tags and a combined query string derived from free-form mood text.
type MoodQuery struct {
	Tags  []string
	Query string
}

// Port: free-text mood to search-tag conversion. The pipeline must be able
// to proceed with an empty tag list when conversion fails, so implementations
// are expected to degrade rather than block a search.
type MoodConverter interface {
	Convert(ctx context.Context, moodText string) (MoodQuery, error)
}
