// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package catalog derives display lists from the immutable software catalog.
//
// Every function in this package is pure: inputs are never mutated and
// identical inputs always give identical output.
package catalog

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lazycatapps/downloadhub/internal/models"
	"github.com/lazycatapps/downloadhub/internal/pkg/validator"
)

// AllCategories is the category filter sentinel that keeps every item.
const AllCategories = "all"

// DefaultSort is used when the sort key is empty or unknown.
const DefaultSort = validator.SortDownloads

// releaseDateLayouts lists accepted release date formats, most specific first.
var releaseDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"2006",
}

// Query filters items by category and search term, then sorts them by sortKey.
// An empty category filter means "all". Unknown categories yield an empty result.
// The sort is stable: ties keep their input order.
func Query(items []models.SoftwareItem, categoryFilter, searchTerm, sortKey string) []models.SoftwareItem {
	result := Search(FilterCategory(items, categoryFilter), searchTerm)
	Sort(result, sortKey)
	return result
}

// FilterCategory keeps items belonging to the category.
// The returned slice is always a fresh copy.
func FilterCategory(items []models.SoftwareItem, categoryFilter string) []models.SoftwareItem {
	result := make([]models.SoftwareItem, 0, len(items))
	for _, item := range items {
		if categoryFilter == "" || categoryFilter == AllCategories || item.Category == categoryFilter {
			result = append(result, item)
		}
	}
	return result
}

// Search keeps items whose name, description or any tag contains the term,
// ignoring case. A blank term keeps everything.
// The returned slice is always a fresh copy.
func Search(items []models.SoftwareItem, searchTerm string) []models.SoftwareItem {
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	result := make([]models.SoftwareItem, 0, len(items))
	for _, item := range items {
		if term == "" || matches(&item, term) {
			result = append(result, item)
		}
	}
	return result
}

func matches(item *models.SoftwareItem, term string) bool {
	if strings.Contains(strings.ToLower(item.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Description), term) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// Sort sorts items in place by sortKey using a stable sort.
// Unknown keys fall back to DefaultSort.
func Sort(items []models.SoftwareItem, sortKey string) {
	switch sortKey {
	case validator.SortRating:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Rating > items[j].Rating
		})
	case validator.SortName:
		// Collators keep internal buffers and are not safe for concurrent use.
		col := collate.New(language.English)
		sort.SliceStable(items, func(i, j int) bool {
			return col.CompareString(items[i].Name, items[j].Name) < 0
		})
	case validator.SortDate:
		sortByDate(items)
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Downloads > items[j].Downloads
		})
	}
}

// sortByDate sorts newest first; missing or unparseable dates go last.
func sortByDate(items []models.SoftwareItem) {
	type keyed struct {
		item models.SoftwareItem
		date time.Time
	}

	entries := make([]keyed, len(items))
	for i := range items {
		date, _ := ReleaseDate(&items[i])
		entries[i] = keyed{item: items[i], date: date}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].date.After(entries[j].date)
	})

	for i := range entries {
		items[i] = entries[i].item
	}
}

// ReleaseDate parses the item's release date.
// It returns the zero time and false when the date is missing or unparseable.
func ReleaseDate(item *models.SoftwareItem) (time.Time, bool) {
	return ParseDate(item.Info().ReleaseDate)
}

// ParseDate parses a release date string in any accepted layout.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
