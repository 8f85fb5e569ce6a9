package config

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"go.trai.ch/pakt/internal/build"
	"go.trai.ch/zerr"
)

// RequestManager is the shared HTTP surface of an install: a client with
// an in-memory response cache and a request log that can be exported as an
// HAR archive.
type RequestManager struct {
	client *http.Client

	mu    sync.Mutex
	cache map[string][]byte
	log   []requestLogEntry
}

type requestLogEntry struct {
	Method     string
	URL        string
	Status     int
	Started    time.Time
	DurationMS int64
}

// NewRequestManager creates a RequestManager with a default client.
func NewRequestManager() *RequestManager {
	return &RequestManager{
		client: &http.Client{Timeout: 30 * time.Second},
		cache:  make(map[string][]byte),
	}
}

// Request performs a GET, serving repeats from the in-memory cache.
func (m *RequestManager) Request(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	if body, ok := m.cache[url]; ok {
		m.mu.Unlock()
		return body, nil
	}
	m.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to build request"), "url", url)
	}

	started := time.Now()
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "request failed"), "url", url)
	}
	defer resp.Body.Close() //nolint:errcheck // best effort close

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read response"), "url", url)
	}

	m.mu.Lock()
	m.log = append(m.log, requestLogEntry{
		Method:     http.MethodGet,
		URL:        url,
		Status:     resp.StatusCode,
		Started:    started,
		DurationMS: time.Since(started).Milliseconds(),
	})
	if resp.StatusCode == http.StatusOK {
		m.cache[url] = body
	}
	m.mu.Unlock()

	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(zerr.With(zerr.New("unexpected status"), "url", url), "status", resp.StatusCode)
	}
	return body, nil
}

// ClearCache drops the response cache and the request log.
func (m *RequestManager) ClearCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = make(map[string][]byte)
	m.log = nil
}

// SaveHar writes the request log as an HAR 1.2 archive.
func (m *RequestManager) SaveHar(path string) error {
	m.mu.Lock()
	entries := make([]map[string]any, 0, len(m.log))
	for _, e := range m.log {
		entries = append(entries, map[string]any{
			"startedDateTime": e.Started.UTC().Format(time.RFC3339),
			"time":            e.DurationMS,
			"request": map[string]any{
				"method":      e.Method,
				"url":         e.URL,
				"httpVersion": "HTTP/1.1",
				"headers":     []any{},
				"queryString": []any{},
				"headersSize": -1,
				"bodySize":    -1,
			},
			"response": map[string]any{
				"status":      e.Status,
				"statusText":  http.StatusText(e.Status),
				"httpVersion": "HTTP/1.1",
				"headers":     []any{},
				"content":     map[string]any{"size": -1, "mimeType": "application/json"},
				"redirectURL": "",
				"headersSize": -1,
				"bodySize":    -1,
			},
			"cache":   map[string]any{},
			"timings": map[string]any{"send": 0, "wait": e.DurationMS, "receive": 0},
		})
	}
	m.mu.Unlock()

	har := map[string]any{
		"log": map[string]any{
			"version": "1.2",
			"creator": map[string]any{"name": "pakt", "version": build.Version},
			"entries": entries,
		},
	}

	data, err := json.MarshalIndent(har, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode har archive")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // har file is a project artifact
		return zerr.With(zerr.Wrap(err, "failed to write har archive"), "path", path)
	}
	return nil
}
