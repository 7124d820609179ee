package mood

import (
	"context"
	"strings"

	"mood-dining-service/internal/ports"
)

// keywordTable maps mood vocabulary to search tags. It backs both the
// fallback path of Converter and the standalone KeywordConverter used when
// no generative service is configured.
var keywordTable = map[string][]string{
	"cozy":        {"cafe", "bistro"},
	"comfort":     {"diner", "home cooking"},
	"celebrate":   {"fine dining", "wine"},
	"celebration": {"fine dining", "wine"},
	"romantic":    {"candlelight", "wine bar"},
	"quick":       {"fast food", "takeaway"},
	"hungry":      {"buffet", "grill"},
	"light":       {"salad", "vegetarian"},
	"healthy":     {"salad", "organic"},
	"spicy":       {"curry", "szechuan"},
	"sweet":       {"dessert", "bakery"},
	"drinks":      {"izakaya", "bar"},
	"tired":       {"comfort food", "noodles"},
	"adventurous": {"street food", "fusion"},
}

// KeywordTags scans the mood text for known vocabulary and returns the
// matching tags in deterministic word order, deduplicated.
func KeywordTags(moodText string) []string {
	lower := strings.ToLower(moodText)

	seen := make(map[string]struct{})
	var out []string
	for _, word := range strings.Fields(lower) {
		word = strings.Trim(word, ".,!?")
		for _, tag := range keywordTable[word] {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// KeywordConverter is the offline mood converter, selected at the
// composition boundary when no generative text service is configured.
type KeywordConverter struct{}

func NewKeywordConverter() *KeywordConverter { return &KeywordConverter{} }

func (k *KeywordConverter) Convert(_ context.Context, moodText string) (ports.MoodQuery, error) {
	tags := KeywordTags(moodText)
	return ports.MoodQuery{
		Tags:  tags,
		Query: strings.Join(tags, " "),
	}, nil
}
