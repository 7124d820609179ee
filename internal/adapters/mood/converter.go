package mood

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"mood-dining-service/internal/ports"
)

// Converter turns free-form mood text into restaurant search tags by asking
// a generative text service, degrading to a keyword table when the call
// fails. A search must never be blocked on mood conversion.
type Converter struct {
	session *http.Client
	apiKey  string
	baseURL string
	model   string
}

func NewConverter(apiKey string) (*Converter, error) {
	if apiKey == "" {
		return nil, errors.New("generative text api key is empty")
	}

	return &Converter{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com",
		model:   "gemini-1.5-flash",
	}, nil
}

const tagPrompt = "List up to five short English restaurant search keywords " +
	"matching this dining mood, comma separated, no other text: "

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Convert returns tags for the mood text. Generative failures are logged
// and answered from the keyword table instead; conversion only errors on
// empty input.
func (c *Converter) Convert(ctx context.Context, moodText string) (ports.MoodQuery, error) {
	moodText = strings.TrimSpace(moodText)
	if moodText == "" {
		return ports.MoodQuery{}, errors.New("convert mood: text is empty")
	}

	tags, err := c.generateTags(ctx, moodText)
	if err != nil {
		log.Printf("convert mood: generative call failed, using keyword fallback err=%v", err)
		tags = KeywordTags(moodText)
	}

	return ports.MoodQuery{
		Tags:  tags,
		Query: strings.Join(tags, " "),
	}, nil
}

func (c *Converter) generateTags(ctx context.Context, moodText string) ([]string, error) {
	reqBody := generateContentRequest{
		Contents: []content{{Parts: []contentPart{{Text: tagPrompt + moodText}}}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call generative service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var decoded generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("empty generation result")
	}

	tags := splitTags(decoded.Candidates[0].Content.Parts[0].Text)
	if len(tags) == 0 {
		return nil, errors.New("no tags in generation result")
	}
	return tags, nil
}

func splitTags(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.ToLower(strings.TrimSpace(p))
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}
