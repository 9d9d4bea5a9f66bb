package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"journalx/internal/cache"
)

// Client resolves screenshot storage paths to time-limited download URLs via
// the object-storage signing endpoint. Resolved URLs are cached until shortly
// before they expire so repeated views of the same entry do not re-sign.
type Client struct {
	BaseURL string
	Bucket  string
	APIKey  string

	Cache  cache.Store
	URLTTL time.Duration

	HTTP *http.Client
}

type signResponse struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

// ResolveDownloadURL turns a storage path into its canonical signed download
// URL.
func (c *Client) ResolveDownloadURL(ctx context.Context, path string) (string, error) {
	path = strings.TrimSpace(strings.TrimPrefix(path, "/"))
	if path == "" {
		return "", errors.New("storage path is empty")
	}

	key := "signed-url:" + c.Bucket + ":" + path
	if c.Cache != nil {
		if b, found, err := c.Cache.Get(ctx, key); err == nil && found {
			return string(b), nil
		}
	}

	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return "", errors.New("storage base url is empty")
	}

	endpoint := fmt.Sprintf("%s/v1/buckets/%s/sign?path=%s",
		base, url.PathEscape(c.Bucket), url.QueryEscape(path))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(c.APIKey) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.APIKey))
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("storage sign http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var sr signResponse
	if err := json.Unmarshal(b, &sr); err != nil {
		return "", err
	}
	if strings.TrimSpace(sr.URL) == "" {
		return "", errors.New("storage sign returned an empty url")
	}

	if c.Cache != nil {
		ttl := c.URLTTL
		if exp, perr := time.Parse(time.RFC3339, strings.TrimSpace(sr.ExpiresAt)); perr == nil {
			// Drop the cached URL a minute before the signature lapses.
			if until := time.Until(exp) - time.Minute; until > 0 && (ttl <= 0 || until < ttl) {
				ttl = until
			}
		}
		if ttl > 0 {
			_ = c.Cache.Set(ctx, key, []byte(sr.URL), ttl)
		}
	}

	return sr.URL, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 10 * time.Second}
}
