// SPDX-License-Identifier: MIT

// Package gsheet ingests the event schedule from a Google Sheets document.
package gsheet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"schedsync/internal/config"
	"schedsync/internal/log"
	"schedsync/internal/metrics"
	"schedsync/internal/ratelimit"
)

const defaultBaseURL = "https://sheets.googleapis.com/v4"

// Config holds the connection settings for one spreadsheet document.
type Config struct {
	SheetID  string
	APIKey   string
	BaseURL  string // defaults to the public Sheets v4 endpoint
	CacheDir string // per-range cache directory; empty disables caching
}

// ConfigFromEnv builds a Config from the process environment. The sheet ID
// and API key are required; their absence is a configuration error raised
// before any network call.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		SheetID:  config.ParseString(config.EnvSheetID, ""),
		APIKey:   config.ParseString(config.EnvAPIKey, ""),
		CacheDir: filepath.Join(config.ParseString(config.EnvDataDir, "data"), "cache"),
	}
	if cfg.SheetID == "" {
		return Config{}, fmt.Errorf("%w: %s not set", ErrConfiguration, config.EnvSheetID)
	}
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("%w: %s not set", ErrConfiguration, config.EnvAPIKey)
	}
	return cfg, nil
}

// Client fetches cell ranges from the remote spreadsheet API. Every call is
// dispatched through the shared rate-limit queue, so fetches from any caller
// in the process never overlap and keep the mandated spacing.
type Client struct {
	cfg   Config
	http  *http.Client
	queue *ratelimit.Queue
}

// New validates the config and wires a client onto the shared queue.
func New(cfg Config, queue *ratelimit.Queue) (*Client, error) {
	if cfg.SheetID == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: sheet ID and API key are required", ErrConfiguration)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: 30 * time.Second},
		queue: queue,
	}, nil
}

// TabNames lists the named tabs of the backing spreadsheet.
func (c *Client) TabNames(ctx context.Context) ([]string, error) {
	u := fmt.Sprintf("%s/spreadsheets/%s?key=%s&fields=sheets.properties.title",
		c.cfg.BaseURL, url.PathEscape(c.cfg.SheetID), url.QueryEscape(c.cfg.APIKey))

	var payload struct {
		Sheets []struct {
			Properties struct {
				Title string `json:"title"`
			} `json:"properties"`
		} `json:"sheets"`
	}
	if err := c.getJSON(ctx, "tabs", u, &payload); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(payload.Sheets))
	for _, s := range payload.Sheets {
		if s.Properties.Title != "" {
			names = append(names, s.Properties.Title)
		}
	}
	if len(names) == 0 {
		return nil, &APIError{Sentinel: ErrNotFound, Operation: "tabs"}
	}
	return names, nil
}

// Values fetches one rectangular cell range from a tab. An empty matrix is
// a valid result, not an error. Every successful fetch is mirrored into the
// per-range cache file; a failed cache write never fails the fetch.
func (c *Client) Values(ctx context.Context, tab, rangeSpec string) ([][]string, error) {
	ref := tab + "!" + rangeSpec
	u := fmt.Sprintf("%s/spreadsheets/%s/values/%s?key=%s",
		c.cfg.BaseURL, url.PathEscape(c.cfg.SheetID), url.PathEscape(ref), url.QueryEscape(c.cfg.APIKey))

	var payload struct {
		Values [][]any `json:"values"`
	}
	if err := c.getJSON(ctx, "values", u, &payload); err != nil {
		return nil, err
	}

	matrix := make([][]string, 0, len(payload.Values))
	for _, row := range payload.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, stringifyCell(cell))
		}
		matrix = append(matrix, cells)
	}

	c.cacheRange(ctx, rangeSpec, matrix)
	return matrix, nil
}

// getJSON performs one rate-limited GET and decodes the response body.
func (c *Client) getJSON(ctx context.Context, op, rawURL string, out any) error {
	return c.queue.Do(ctx, func(ctx context.Context) error {
		metrics.RecordFetch(op)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			metrics.RecordFetchError(op)
			return &APIError{Sentinel: ErrFetch, Operation: op, Err: err}
		}

		res, err := c.http.Do(req)
		if err != nil {
			metrics.RecordFetchError(op)
			return &APIError{Sentinel: ErrFetch, Operation: op, Err: err}
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			metrics.RecordFetchError(op)
			body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
			sentinel := ErrFetch
			if res.StatusCode == http.StatusNotFound {
				sentinel = ErrNotFound
			}
			return &APIError{
				Sentinel:  sentinel,
				Operation: op,
				Status:    res.StatusCode,
				Body:      strings.TrimSpace(string(body)),
			}
		}

		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			metrics.RecordFetchError(op)
			return &APIError{Sentinel: ErrFetch, Operation: op, Err: err}
		}
		return nil
	})
}

// stringifyCell normalizes a decoded JSON cell. Formatted sheet values are
// strings, but numeric cells can surface as float64.
func stringifyCell(cell any) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (c *Client) cacheRange(ctx context.Context, rangeSpec string, matrix [][]string) {
	if c.cfg.CacheDir == "" {
		return
	}
	if err := writeRangeCache(c.cfg.CacheDir, rangeSpec, matrix); err != nil {
		metrics.RecordCacheWriteError()
		logger := log.WithComponentFromContext(ctx, "gsheet")
		logger.Warn().
			Err(err).
			Str("event", "cache.write_failed").
			Str("range", rangeSpec).
			Msg("range cache write failed")
	}
}
