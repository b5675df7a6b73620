// Package fixtures provides fake upstream providers and servers shared by
// tests across packages.
package fixtures

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/henry0hai/simple-mcp-server/search"
	"github.com/henry0hai/simple-mcp-server/weather"
)

// ScriptedSearchProvider implements search.Provider with canned responses
// and records the queries it receives.
type ScriptedSearchProvider struct {
	Results []search.Result
	Err     error

	mu      sync.Mutex
	queries []string
}

func (p *ScriptedSearchProvider) Search(ctx context.Context, query string) ([]search.Result, error) {
	p.mu.Lock()
	p.queries = append(p.queries, query)
	p.mu.Unlock()

	if p.Err != nil {
		return nil, p.Err
	}
	return p.Results, nil
}

// Queries returns the queries seen so far.
func (p *ScriptedSearchProvider) Queries() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.queries))
	copy(out, p.queries)
	return out
}

// ScriptedWeatherProvider implements weather.Provider with a canned report.
type ScriptedWeatherProvider struct {
	Report *weather.Report
	Err    error
}

func (p *ScriptedWeatherProvider) Current(ctx context.Context, city string) (*weather.Report, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	if p.Report != nil {
		return p.Report, nil
	}
	return &weather.Report{City: city, Conditions: "clear sky", TempC: 20}, nil
}

// NewFakeSerpAPI starts an httptest server that answers every request with
// the given organic results, in SerpAPI's response shape.
func NewFakeSerpAPI(t *testing.T, results []search.Result) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Missing API key."})
			return
		}

		organic := make([]map[string]any, 0, len(results))
		for i, res := range results {
			organic = append(organic, map[string]any{
				"position": i + 1,
				"title":    res.Title,
				"link":     res.Link,
				"snippet":  res.Snippet,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"organic_results": organic})
	}))

	t.Cleanup(srv.Close)
	return srv
}

// NewFakeOpenWeather starts an httptest server that answers every request
// with fixed current conditions for the requested city.
func NewFakeOpenWeather(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"name": city,
			"cod":  200,
			"weather": []map[string]any{
				{"main": "Clear", "description": "clear sky"},
			},
			"main": map[string]any{"temp": 25.0, "feels_like": 26.0, "humidity": 50},
			"wind": map[string]any{"speed": 1.5},
		})
	}))

	t.Cleanup(srv.Close)
	return srv
}
