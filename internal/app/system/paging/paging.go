// internal/app/system/paging/paging.go

// Package paging implements the page/limit pagination used across every
// list endpoint: 1-indexed "page" and "limit" query parameters mapped to
// Mongo skip/limit, with totals reported back to the caller.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is used when the caller does not supply one.
const DefaultLimit = 10

// MaxLimit caps how many rows one page may request.
const MaxLimit = 100

// Page holds the parsed pagination parameters for one request.
type Page struct {
	Page  int
	Limit int
}

// Parse extracts "page" and "limit" from the request. Missing or invalid
// values fall back to page 1 and defaultLimit (DefaultLimit when 0).
func Parse(r *http.Request, defaultLimit int) Page {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	p := Page{Page: 1, Limit: defaultLimit}
	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Limit = n
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Skip returns the number of documents to skip for this page.
func (p Page) Skip() int64 { return int64(p.Page-1) * int64(p.Limit) }

// Limit64 returns the limit as an int64 for Mongo find options.
func (p Page) Limit64() int64 { return int64(p.Limit) }

// TotalPages computes the page count for a total row count.
func (p Page) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return int(pages)
}

// Meta is the pagination block echoed in list responses.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// MetaFor builds the response metadata for a page and total.
func (p Page) MetaFor(total int64) Meta {
	return Meta{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: p.TotalPages(total)}
}
