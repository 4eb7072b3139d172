package ics

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/log"
)

// cacheMeta holds the conditional-request state for one feed URL.
type cacheMeta struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Fetcher downloads ICS feeds with a disk-backed HTTP cache. A 304, a
// network failure, or a non-OK status all fall back to the cached body
// when one exists, so a flaky feed still imports.
type Fetcher struct {
	client   *http.Client
	cacheDir string
}

// NewFetcher caches feed bodies and metadata under cacheDir.
func NewFetcher(cacheDir string) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: 15 * time.Second},
		cacheDir: cacheDir,
	}
}

// Fetch returns the feed body for feedURL, from the network or the cache.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	if feedURL == "" {
		return nil, errors.New("feed URL is empty")
	}

	dir := filepath.Join(f.cacheDir, cacheKey(feedURL))
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	meta := readMeta(dir)
	cached, _ := os.ReadFile(filepath.Join(dir, "body.ics"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	if meta.ETag != "" {
		req.Header.Set("If-None-Match", meta.ETag)
	}
	if meta.LastModified != "" {
		req.Header.Set("If-Modified-Since", meta.LastModified)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if len(cached) > 0 {
			log.Logger.Warn().Err(err).Str("url", redactURL(feedURL)).
				Msg("feed unreachable, using cached copy")
			return cached, nil
		}
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		f.writeCache(dir, cacheMeta{
			URL:          feedURL,
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
			UpdatedAt:    time.Now().UTC(),
		}, body)
		log.Logger.Info().Str("url", redactURL(feedURL)).Int("bytes", len(body)).Msg("feed fetched")
		return body, nil

	case http.StatusNotModified:
		if len(cached) == 0 {
			return nil, errors.New("304 Not Modified but no cached body")
		}
		log.Logger.Debug().Str("url", redactURL(feedURL)).Msg("feed not modified, using cache")
		return cached, nil

	default:
		if len(cached) > 0 {
			log.Logger.Warn().Int("status", resp.StatusCode).Str("url", redactURL(feedURL)).
				Msg("feed returned error status, using cached copy")
			return cached, nil
		}
		return nil, errors.New("feed fetch failed: " + resp.Status)
	}
}

func cacheKey(feedURL string) string {
	sum := sha256.Sum256([]byte(feedURL))
	return hex.EncodeToString(sum[:8])
}

func readMeta(dir string) cacheMeta {
	var meta cacheMeta
	data, err := os.ReadFile(filepath.Join(dir, "meta.json"))
	if err != nil {
		return meta
	}
	_ = json.Unmarshal(data, &meta)
	return meta
}

func (f *Fetcher) writeCache(dir string, meta cacheMeta, body []byte) {
	if err := os.WriteFile(filepath.Join(dir, "body.ics"), body, 0o600); err != nil {
		log.Logger.Warn().Err(err).Msg("failed to cache feed body")
		return
	}
	data, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(filepath.Join(dir, "meta.json"), data, 0o600); err != nil {
		log.Logger.Warn().Err(err).Msg("failed to cache feed metadata")
	}
}

// redactURL keeps only scheme and host for logging; feed paths often
// carry access tokens.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "(redacted)"
	}
	return u.Scheme + "://" + u.Host + "/...(redacted)"
}
