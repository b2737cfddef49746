// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package catalog

import (
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lazycatapps/downloadhub/internal/models"
	"github.com/lazycatapps/downloadhub/internal/pkg/validator"
)

const (
	// DefaultRelatedLimit is the number of related items shown on a detail page.
	DefaultRelatedLimit = 6

	// TopCategoriesLimit is the number of categories in the "most popular" block.
	TopCategoriesLimit = 6

	// PodiumSize is the number of items highlighted on the popular page.
	PodiumSize = 3

	// DefaultPageSize is the API page size when none is requested.
	DefaultPageSize = 20
)

// Feature reason thresholds.
const (
	mostDownloadedThreshold = 10000
	exceptionalRating       = 4.5
	professionalTag         = "professional"

	badgeDownloadsThreshold = 1000000
	badgeRating             = 4.8
)

// Featured returns featured items, most downloaded first.
func Featured(items []models.SoftwareItem) []models.SoftwareItem {
	result := make([]models.SoftwareItem, 0)
	for _, item := range items {
		if item.Featured {
			result = append(result, item)
		}
	}
	Sort(result, validator.SortDownloads)
	return result
}

// Latest returns items that carry a parseable release date, newest first.
func Latest(items []models.SoftwareItem) []models.SoftwareItem {
	result := make([]models.SoftwareItem, 0)
	for i := range items {
		if _, ok := ReleaseDate(&items[i]); ok {
			result = append(result, items[i])
		}
	}
	Sort(result, validator.SortDate)
	return result
}

// Popular returns every item, most downloaded first.
func Popular(items []models.SoftwareItem) []models.SoftwareItem {
	return Query(items, AllCategories, "", validator.SortDownloads)
}

// Related returns items from the same category (excluding the item itself)
// followed by featured items from other categories, truncated to limit.
func Related(items []models.SoftwareItem, item *models.SoftwareItem, limit int) []models.SoftwareItem {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	result := make([]models.SoftwareItem, 0, limit)
	for _, s := range items {
		if s.Category == item.Category && s.ID != item.ID {
			result = append(result, s)
		}
	}
	for _, s := range items {
		if s.Featured && s.ID != item.ID && s.Category != item.Category {
			result = append(result, s)
		}
	}

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// FindSoftware returns the item with the given id, or nil.
func FindSoftware(items []models.SoftwareItem, id string) *models.SoftwareItem {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

// FindCategory returns the category with the given id.
// A missing category degrades to an "Unknown" placeholder and false.
func FindCategory(categories []models.Category, id string) (models.Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{ID: id, Name: models.Unknown}, false
}

// CategoryStats aggregates per-category and catalog-wide counters.
// Categories keep their catalog order; TopCategories is sorted by count.
func CategoryStats(catalog *models.Catalog) models.CatalogStats {
	stats := models.CatalogStats{
		Categories:    make([]models.CategoryStat, 0, len(catalog.Categories)),
		TotalSoftware: len(catalog.Software),
	}

	index := make(map[string]int, len(catalog.Categories))
	for i, c := range catalog.Categories {
		index[c.ID] = i
		stats.Categories = append(stats.Categories, models.CategoryStat{
			Category: c,
			Icon:     IconFor(c.ID),
		})
	}

	for _, s := range catalog.Software {
		stats.TotalDownloads += s.Downloads
		if s.Featured {
			stats.TotalFeatured++
		}
		if i, ok := index[s.Category]; ok {
			stats.Categories[i].Count++
			stats.Categories[i].Downloads += s.Downloads
		}
	}

	top := make([]models.CategoryStat, len(stats.Categories))
	copy(top, stats.Categories)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > TopCategoriesLimit {
		top = top[:TopCategoriesLimit]
	}
	stats.TopCategories = top

	return stats
}

// StatFor returns the stat entry for one category.
func StatFor(catalog *models.Catalog, categoryID string) (models.CategoryStat, bool) {
	category, ok := FindCategory(catalog.Categories, categoryID)
	stat := models.CategoryStat{Category: category, Icon: IconFor(categoryID)}
	for _, s := range catalog.Software {
		if s.Category == categoryID {
			stat.Count++
			stat.Downloads += s.Downloads
		}
	}
	return stat, ok
}

// RelatedCategories returns up to limit categories other than the current one.
func RelatedCategories(categories []models.Category, currentID string, limit int) []models.Category {
	result := make([]models.Category, 0, limit)
	for _, c := range categories {
		if len(result) >= limit {
			break
		}
		if c.ID != currentID {
			result = append(result, c)
		}
	}
	return result
}

// FeatureReasons explains why an item is recommended on its detail page.
func FeatureReasons(item *models.SoftwareItem) []string {
	var reasons []string

	if item.Downloads > mostDownloadedThreshold {
		reasons = append(reasons, "Most downloaded in category")
	}
	if item.Rating >= exceptionalRating {
		reasons = append(reasons, "Exceptional user ratings")
	}
	if item.HasTag(professionalTag) {
		reasons = append(reasons, "Industry standard tool")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Editor's choice")
	}
	return reasons
}

// FeaturedBadge returns the single badge shown on the featured page.
func FeaturedBadge(item *models.SoftwareItem) string {
	switch {
	case item.Downloads > badgeDownloadsThreshold:
		return "Most Downloaded"
	case item.Rating >= badgeRating:
		return "Highest Rated"
	case item.HasTag(professionalTag):
		return "Professional Choice"
	default:
		return "Editor's Choice"
	}
}

// TimeAgo formats the distance between a release date and now.
// Day counts round up; a missing date gives "Unknown".
func TimeAgo(date string, now time.Time) string {
	t, ok := ParseDate(date)
	if !ok {
		return models.Unknown
	}

	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))

	switch {
	case days == 1:
		return "1 day ago"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", ceilDiv(days, 7))
	case days < 365:
		return fmt.Sprintf("%d months ago", ceilDiv(days, 30))
	default:
		return fmt.Sprintf("%d years ago", ceilDiv(days, 365))
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// FormatCount formats a counter with English thousands separators.
func FormatCount(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// Paginate returns one page of items and the total count.
// Page numbers start at 1; zero values use the defaults.
func Paginate(items []models.SoftwareItem, page, pageSize int) ([]models.SoftwareItem, int, int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > validator.MaxPageSize {
		pageSize = validator.MaxPageSize
	}

	total := len(items)
	start := (page - 1) * pageSize
	if start >= total {
		return []models.SoftwareItem{}, total, page, pageSize
	}

	end := start + pageSize
	if end > total {
		end = total
	}
	return items[start:end], total, page, pageSize
}
