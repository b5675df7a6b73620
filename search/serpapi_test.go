package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchMissingKey(t *testing.T) {
	client := New("", nil)

	_, err := client.Search(context.Background(), "test")
	if err != ErrMissingAPIKey {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestSearchNormalizesOrganicResults(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "golang" {
			t.Errorf("expected q=golang, got %q", q.Get("q"))
		}
		if q.Get("engine") != "google" {
			t.Errorf("expected engine=google, got %q", q.Get("engine"))
		}
		if q.Get("api_key") != "test-key" {
			t.Errorf("expected api_key=test-key, got %q", q.Get("api_key"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"organic_results": [
				{"position": 1, "title": "The Go Programming Language", "link": "https://go.dev", "snippet": "Build simple software."},
				{"position": 2, "title": "Go wiki", "link": "https://go.dev/wiki"}
			]
		}`))
	}))
	defer upstream.Close()

	client := New("test-key", nil)
	client.BaseURL = upstream.URL

	results, err := client.Search(context.Background(), "golang")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "The Go Programming Language" {
		t.Errorf("unexpected title: %q", results[0].Title)
	}
	if results[0].Link != "https://go.dev" {
		t.Errorf("unexpected link: %q", results[0].Link)
	}
	if results[0].Position != 1 {
		t.Errorf("unexpected position: %d", results[0].Position)
	}
	if results[1].Snippet != "" {
		t.Errorf("expected empty snippet, got %q", results[1].Snippet)
	}
}

func TestSearchUpstreamStatusError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer upstream.Close()

	client := New("bad-key", nil)
	client.BaseURL = upstream.URL

	if _, err := client.Search(context.Background(), "test"); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestSearchErrorBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "Invalid API key."}`))
	}))
	defer upstream.Close()

	client := New("bad-key", nil)
	client.BaseURL = upstream.URL

	_, err := client.Search(context.Background(), "test")
	if err == nil {
		t.Fatal("expected error for error body")
	}
}

func TestSearchEmptyResults(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"search_metadata": {"status": "Success"}}`))
	}))
	defer upstream.Close()

	client := New("test-key", nil)
	client.BaseURL = upstream.URL

	results, err := client.Search(context.Background(), "no hits")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
