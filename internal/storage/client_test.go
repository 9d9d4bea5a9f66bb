package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"journalx/internal/cache"
)

func TestResolveDownloadURL_SignsAndCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization=%q", got)
		}
		if got := r.URL.Query().Get("path"); got != "screenshots/u1/chart.png" {
			t.Errorf("path=%q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"url":        "https://cdn.example/chart.png?sig=abc",
			"expires_at": time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
		})
	}))
	defer srv.Close()

	c := &Client{
		BaseURL: srv.URL,
		Bucket:  "shots",
		APIKey:  "test-key",
		Cache:   cache.NewMemoryStore(),
		URLTTL:  15 * time.Minute,
		HTTP:    srv.Client(),
	}

	u, err := c.ResolveDownloadURL(context.Background(), "screenshots/u1/chart.png")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if u != "https://cdn.example/chart.png?sig=abc" {
		t.Fatalf("url=%q", u)
	}

	// Second resolve of the same path must come from cache.
	u2, err := c.ResolveDownloadURL(context.Background(), "screenshots/u1/chart.png")
	if err != nil {
		t.Fatalf("second err=%v", err)
	}
	if u2 != u {
		t.Fatalf("cached url=%q want %q", u2, u)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("sign endpoint hit %d times want 1", hits)
	}
}

func TestResolveDownloadURL_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such object", http.StatusNotFound)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, Bucket: "shots", HTTP: srv.Client()}
	if _, err := c.ResolveDownloadURL(context.Background(), "missing.png"); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestResolveDownloadURL_EmptyPath(t *testing.T) {
	c := &Client{BaseURL: "http://unused", Bucket: "shots"}
	if _, err := c.ResolveDownloadURL(context.Background(), "  /  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
