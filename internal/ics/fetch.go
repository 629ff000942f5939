// Package ics merges subscribed iCalendar sources into recal's event
// list: fetching feeds, parsing VEVENTs and flattening occurrences to
// calendar dates inside the display window.
package ics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/igorp74/recal/internal/config"
	applog "github.com/igorp74/recal/internal/log"
)

// FetchResult is one fetched source body, possibly served from the disk
// cache.
type FetchResult struct {
	Source    config.ICSSource
	Body      []byte
	FromCache bool
}

// cacheMeta holds the conditional-request metadata for one URL.
type cacheMeta struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Fetcher loads ICS sources. HTTP sources use ETag/Last-Modified
// conditional requests backed by a disk cache keyed on the URL hash;
// anything that is not an http(s) URL is read as a local file.
type Fetcher struct {
	client   *http.Client
	cacheDir string
}

func NewFetcher(cacheDir string) *Fetcher {
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "recal-ics-cache")
	}
	return &Fetcher{
		client:   &http.Client{Timeout: 15 * time.Second},
		cacheDir: cacheDir,
	}
}

// FetchAll loads every source. Failures are logged and skipped so one
// broken subscription never hides the others.
func (f *Fetcher) FetchAll(ctx context.Context, sources []config.ICSSource) []FetchResult {
	results := make([]FetchResult, 0, len(sources))
	for _, src := range sources {
		res, err := f.FetchOne(ctx, src)
		if err != nil {
			applog.Error("ics fetch failed", err, "id", src.ID, "url", redactURL(src.URL))
			continue
		}
		results = append(results, res)
	}
	return results
}

func (f *Fetcher) FetchOne(ctx context.Context, src config.ICSSource) (FetchResult, error) {
	if src.URL == "" {
		return FetchResult{}, errors.New("source URL is empty")
	}

	if !strings.HasPrefix(src.URL, "http://") && !strings.HasPrefix(src.URL, "https://") {
		body, err := os.ReadFile(src.URL)
		if err != nil {
			return FetchResult{}, err
		}
		return FetchResult{Source: src, Body: body}, nil
	}

	cachePath := f.cachePathForURL(src.URL)
	if err := os.MkdirAll(cachePath, 0o700); err != nil {
		return FetchResult{}, err
	}

	meta, _ := loadCacheMeta(cachePath)
	cachedBody, _ := os.ReadFile(filepath.Join(cachePath, "body.ics"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return FetchResult{}, err
	}
	if meta.ETag != "" {
		req.Header.Set("If-None-Match", meta.ETag)
	}
	if meta.LastModified != "" {
		req.Header.Set("If-Modified-Since", meta.LastModified)
	}

	applog.Debug("ics fetch start", "id", src.ID, "url", redactURL(src.URL))

	resp, err := f.client.Do(req)
	if err != nil {
		if len(cachedBody) > 0 {
			applog.Error("ics fetch network error, using cached body", err,
				"id", src.ID, "url", redactURL(src.URL))
			return FetchResult{Source: src, Body: cachedBody, FromCache: true}, nil
		}
		return FetchResult{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return FetchResult{}, readErr
		}
		newMeta := cacheMeta{
			URL:          src.URL,
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
			UpdatedAt:    time.Now().UTC(),
		}
		if err := saveCache(cachePath, newMeta, body); err != nil {
			applog.Error("ics cache save failed", err, "id", src.ID)
		}
		return FetchResult{Source: src, Body: body}, nil

	case http.StatusNotModified:
		if len(cachedBody) == 0 {
			return FetchResult{}, errors.New("304 Not Modified but no cached body")
		}
		return FetchResult{Source: src, Body: cachedBody, FromCache: true}, nil

	default:
		if len(cachedBody) > 0 {
			applog.Error("ics fetch non-OK, using cached body", errors.New(resp.Status),
				"id", src.ID, "url", redactURL(src.URL), "status", resp.StatusCode)
			return FetchResult{Source: src, Body: cachedBody, FromCache: true}, nil
		}
		return FetchResult{}, errors.New(resp.Status)
	}
}

func (f *Fetcher) cachePathForURL(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(f.cacheDir, hex.EncodeToString(sum[:8]))
}

func loadCacheMeta(cachePath string) (cacheMeta, error) {
	var meta cacheMeta
	data, err := os.ReadFile(filepath.Join(cachePath, "meta.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheMeta{}, err
	}
	return meta, nil
}

func saveCache(cachePath string, meta cacheMeta, body []byte) error {
	// Body first, so meta never points at a missing body.
	if err := os.WriteFile(filepath.Join(cachePath, "body.ics"), body, 0o600); err != nil {
		return err
	}
	data, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cachePath, "meta.json"), data, 0o600)
}

// redactURL strips path and query from a URL for logging; feed URLs
// often embed tokens.
func redactURL(u string) string {
	i := strings.Index(u, "://")
	if i < 0 {
		return u
	}
	rest := u[i+3:]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		return u[:i+3+j] + "/...(redacted)"
	}
	return u
}
