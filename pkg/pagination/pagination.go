// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// ("page", "perPage") and how the resulting metadata is delivered next to the
// listed records.
package pagination

import (
	"math"
	"net/http"
	"strconv"
)

const (
	// DefaultPerPage is the number of items per page if not specified.
	DefaultPerPage = 5
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and page size from a request's query string.
//
// PerPage has no upper bound; a very large page returns every matching row.
type Params struct {
	Page    int
	PerPage int
}

// Normalize replaces non-positive values with the defaults.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	return p
}

// Offset returns the SQL OFFSET value derived from [Page] and [PerPage].
//
// The result saturates at math.MaxInt instead of wrapping.
func (p Params) Offset() int {
	if p.Page <= 1 || p.PerPage < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewMeta constructs pagination metadata for a response.
//
// TotalPages is ceil(total / perPage), computed without overflow for any
// positive perPage.
func NewMeta(page, perPage, total int) Meta {
	totalPages := 0
	if perPage > 0 {
		totalPages = total / perPage
		if total%perPage != 0 {
			totalPages++
		}
	}

	return Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "perPage" query parameters from an HTTP request.
//
// # Fallbacks
//
// Missing, non-numeric, zero or negative values fall back to [DefaultPage]
// and [DefaultPerPage].
func FromRequest(r *http.Request) Params {
	return Params{
		Page:    parseIntParam(r, "page", DefaultPage),
		PerPage: parseIntParam(r, "perPage", DefaultPerPage),
	}.Normalize()
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
