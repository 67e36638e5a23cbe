package discovery

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

const defaultSuggestionLimit = 10

type TopicSuggestion struct {
	Title       string     `json:"title"`
	Link        string     `json:"link,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// TopicSource suggests draft topics from an RSS/Atom feed, newest entries
// first as served by the feed.
type TopicSource struct {
	httpClient   *http.Client
	gofeedParser *gofeed.Parser
	userAgent    string
}

func NewTopicSource(httpClient *http.Client, userAgent string) *TopicSource {
	return &TopicSource{
		httpClient:   httpClient,
		gofeedParser: gofeed.NewParser(),
		userAgent:    userAgent,
	}
}

func (s *TopicSource) Suggest(ctx context.Context, feedURL string, limit int) ([]TopicSuggestion, error) {
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}

	data, err := s.fetchFeed(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	parsed, err := s.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	suggestions := make([]TopicSuggestion, 0, limit)
	for _, item := range parsed.Items {
		if item == nil || item.Title == "" {
			continue
		}

		suggestion := TopicSuggestion{
			Title: item.Title,
			Link:  cmp.Or(item.Link, item.GUID),
		}
		if item.PublishedParsed != nil {
			suggestion.PublishedAt = item.PublishedParsed
		}

		suggestions = append(suggestions, suggestion)
		if len(suggestions) >= limit {
			break
		}
	}

	return suggestions, nil
}

func (s *TopicSource) fetchFeed(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
