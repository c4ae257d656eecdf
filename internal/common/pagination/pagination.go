// Package pagination implements offset pagination for the document history
// endpoint: query parameter parsing, offset math, and the JSON envelope the
// list handler returns.
package pagination

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
)

// Config bounds what a single history request may ask for.
type Config struct {
	// DefaultLimit is the page size when the request does not name one.
	DefaultLimit int
	// MaxLimit caps the page size a client may request.
	MaxLimit int
}

// DefaultConfig returns the stock history paging bounds.
func DefaultConfig() Config {
	return Config{DefaultLimit: 20, MaxLimit: 100}
}

// LoadFromEnv reads paging bounds from PAGINATION_DEFAULT_LIMIT and
// PAGINATION_MAX_LIMIT, falling back to DefaultConfig values.
func LoadFromEnv() Config {
	cfg := DefaultConfig()
	if v, err := strconv.Atoi(os.Getenv("PAGINATION_DEFAULT_LIMIT")); err == nil && v > 0 {
		cfg.DefaultLimit = v
	}
	if v, err := strconv.Atoi(os.Getenv("PAGINATION_MAX_LIMIT")); err == nil && v > 0 {
		cfg.MaxLimit = v
	}
	return cfg
}

// Params is the validated paging selection of one history request.
type Params struct {
	// Page is the 1-based page number.
	Page int
	// Limit is the page size.
	Limit int
}

// ParseQueryParams reads the page and limit query parameters. Absent
// parameters take the configured defaults; malformed or out-of-range values
// are an error rather than being silently clamped.
func ParseQueryParams(r *http.Request, cfg Config) (Params, error) {
	params := Params{Page: 1, Limit: cfg.DefaultLimit}

	if s := r.URL.Query().Get("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 || limit > cfg.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", cfg.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}

// Offset is the SQL OFFSET for these params. Page 1 starts at 0.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Metadata describes where one page sits in the full history.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// NewMetadata builds page metadata for a request that matched total rows.
// An empty history still reports one page so that page=1 is always valid.
func NewMetadata(p Params, total int64) Metadata {
	totalPages := 1
	if total > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Metadata{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}
}

// Response is the history endpoint's JSON envelope.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse wraps one page of items with its metadata.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	return Response[T]{Data: data, Pagination: metadata}
}
