// Package search provides a minimal client for the SerpAPI Google search API.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the SerpAPI search endpoint.
const DefaultBaseURL = "https://serpapi.com/search"

// ErrMissingAPIKey is returned when a search is attempted without a key.
var ErrMissingAPIKey = errors.New("search: serpapi key is required")

// Provider is the capability the server's search_google tool depends on.
// It exists so the dispatcher can be tested without network access.
type Provider interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// Result is a small normalized view of one organic search result.
type Result struct {
	Position int    `json:"position,omitempty"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet,omitempty"`
}

// Client is a minimal HTTP client for SerpAPI's Google engine.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// New returns a new client. If httpClient is nil, a default with 15s timeout is used.
func New(apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{BaseURL: DefaultBaseURL, APIKey: apiKey, HTTP: httpClient}
}

// Search runs one Google search and returns the normalized organic results.
// Single attempt, no retry.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	reqURL, err := c.buildSearchURL(query)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("serpapi status %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode serpapi response: %w", err)
	}

	// SerpAPI reports key/quota problems as a 200 with an "error" field.
	if msg, ok := body["error"].(string); ok && msg != "" {
		return nil, fmt.Errorf("serpapi error: %s", msg)
	}

	return normalize(extractOrganic(body)), nil
}

func (c *Client) buildSearchURL(query string) (string, error) {
	u, err := url.Parse(strings.TrimRight(c.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("engine", "google")
	q.Set("api_key", c.APIKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func extractOrganic(body map[string]any) []any {
	if v, ok := body["organic_results"]; ok {
		if arr, ok := v.([]any); ok {
			return arr
		}
	}
	return nil
}

func normalize(items []any) []Result {
	out := make([]Result, 0, len(items))
	for _, it := range items {
		m, _ := it.(map[string]any)
		r := Result{
			Title:   getString(m, "title"),
			Link:    getString(m, "link"),
			Snippet: getString(m, "snippet"),
		}
		if pos, ok := m["position"].(float64); ok {
			r.Position = int(pos)
		}
		out = append(out, r)
	}
	return out
}

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
