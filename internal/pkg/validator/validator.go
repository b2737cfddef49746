// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package validator provides input validation utilities for request parameters.
package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Maximum input lengths to prevent DoS
	MaxIDLength         = 128
	MaxSearchTermLength = 200
	MaxPartNumber       = 999
	MaxPageSize         = 100
)

// Sort keys accepted by list endpoints.
const (
	SortDownloads = "downloads"
	SortRating    = "rating"
	SortName      = "name"
	SortDate      = "date"
)

var (
	// Valid page slug format: lowercase letters and dashes
	// Examples: faq, privacy, terms-of-use
	slugRegex = regexp.MustCompile(`^[a-z][a-z-]{0,63}$`)

	validSortKeys = map[string]bool{
		SortDownloads: true,
		SortRating:    true,
		SortName:      true,
		SortDate:      true,
	}
)

// ValidationError represents an input validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidateID validates a software or category identifier taken from a route.
// Any id the catalog can hold is accepted; only empty, overlong, path-like
// and control-character ids are rejected.
func ValidateID(field, id string) error {
	if id == "" {
		return &ValidationError{
			Field:   field,
			Message: "id cannot be empty",
		}
	}

	if utf8.RuneCountInString(id) > MaxIDLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("id exceeds maximum length of %d characters", MaxIDLength),
		}
	}

	if id == "." || id == ".." || strings.ContainsAny(id, "/\\") {
		return &ValidationError{
			Field:   field,
			Message: "id format is invalid",
		}
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return &ValidationError{
				Field:   field,
				Message: "id contains control characters",
			}
		}
	}

	return nil
}

// ValidateSoftwareID validates a software identifier from a route.
func ValidateSoftwareID(id string) error {
	return ValidateID("id", id)
}

// ParsePartNumber parses and validates a download part number from a route.
func ParsePartNumber(raw string) (int, error) {
	if raw == "" {
		return 0, &ValidationError{
			Field:   "part",
			Message: "part cannot be empty",
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{
			Field:   "part",
			Message: "part must be an integer",
		}
	}

	if n < 1 || n > MaxPartNumber {
		return 0, &ValidationError{
			Field:   "part",
			Message: fmt.Sprintf("part must be between 1 and %d", MaxPartNumber),
		}
	}

	return n, nil
}

// ValidateSortKey validates a sort key. Empty means the default.
func ValidateSortKey(key string) error {
	if key == "" {
		return nil
	}

	if !validSortKeys[key] {
		return &ValidationError{
			Field:   "sort",
			Message: fmt.Sprintf("unsupported sort key: %s", key),
		}
	}

	return nil
}

// ClampSearchTerm cuts a free-text search term to MaxSearchTermLength characters.
// Every term is valid; overlong input is truncated rather than rejected.
func ClampSearchTerm(term string) string {
	if utf8.RuneCountInString(term) <= MaxSearchTermLength {
		return term
	}
	return string([]rune(term)[:MaxSearchTermLength])
}

// ValidateSlug validates a static page slug.
func ValidateSlug(slug string) error {
	if !slugRegex.MatchString(slug) {
		return &ValidationError{
			Field:   "slug",
			Message: "page slug format is invalid",
		}
	}
	return nil
}

// ValidatePagination validates page and page size values.
// Zero values mean "use the default".
func ValidatePagination(page, pageSize int) error {
	if page < 0 {
		return &ValidationError{
			Field:   "page",
			Message: "page cannot be negative",
		}
	}

	if pageSize < 0 || pageSize > MaxPageSize {
		return &ValidationError{
			Field:   "pageSize",
			Message: fmt.Sprintf("pageSize must be between 1 and %d", MaxPageSize),
		}
	}

	return nil
}

// NormalizeSearchTerm trims surrounding whitespace from a search term.
func NormalizeSearchTerm(term string) string {
	return strings.TrimSpace(term)
}
