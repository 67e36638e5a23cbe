package blotato

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Post statuses reported by the provider. The provider's view is
// authoritative; nothing is cached beyond the returned response.
const (
	PostStatusQueued    = "queued"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

// APIError is a non-2xx response from the provider, carrying the HTTP status
// and the raw response body.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("publisher returned status %d: %s", e.StatusCode, e.Body)
}

type PublishRequest struct {
	Platforms   []string   `json:"platforms"`
	Content     string     `json:"content"`
	MediaURLs   []string   `json:"media_urls,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Title       string     `json:"title,omitempty"`
}

type PlatformResult struct {
	Platform string `json:"platform"`
	Status   string `json:"status"`
	PostID   string `json:"postId,omitempty"`
	PostURL  string `json:"postUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}

type PublishResponse struct {
	ID          string           `json:"id"`
	Status      string           `json:"status"`
	Platforms   []PlatformResult `json:"platforms"`
	ScheduledAt *time.Time       `json:"scheduledAt,omitempty"`
}

type Account struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	Username string `json:"username"`
}

// Client talks to the publishing provider. No retries: a publish call has no
// idempotency key, so an automatic retry could double-post.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	client    *http.Client
}

type Option func(*Client)

func NewClient(baseURL string, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.client = httpClient
		}
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

func (c *Client) Publish(ctx context.Context, req PublishRequest) (*PublishResponse, error) {
	var resp PublishResponse
	if err := c.do(ctx, http.MethodPost, "/posts", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Queue(ctx context.Context) ([]PublishResponse, error) {
	var posts []PublishResponse
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) PostStatus(ctx context.Context, id string) (*PublishResponse, error) {
	var resp PublishResponse
	if err := c.do(ctx, http.MethodGet, "/posts/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Cancel(ctx context.Context, id string) (bool, error) {
	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.do(ctx, http.MethodDelete, "/posts/"+id, nil, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (c *Client) Accounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := c.do(ctx, http.MethodGet, "/accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *Client) do(ctx context.Context, method string, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("publisher request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode publisher response: %w", err)
		}
	}

	return nil
}
