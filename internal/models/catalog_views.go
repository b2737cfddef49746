// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package models

// Icon is the presentation descriptor for a category.
type Icon struct {
	Name     string `json:"name"`     // Icon name, e.g. "Code"
	Gradient string `json:"gradient"` // CSS gradient classes, e.g. "from-blue-500 to-purple-500"
}

// CategoryStat is a category with its aggregated counters.
type CategoryStat struct {
	Category
	Count     int   `json:"count"`     // Number of software items in the category
	Downloads int64 `json:"downloads"` // Sum of downloads in the category
	Icon      Icon  `json:"icon"`
}

// CatalogStats aggregates counters across the whole catalog.
type CatalogStats struct {
	Categories     []CategoryStat `json:"categories"`
	TopCategories  []CategoryStat `json:"topCategories"`
	TotalSoftware  int            `json:"totalSoftware"`
	TotalDownloads int64          `json:"totalDownloads"`
	TotalFeatured  int            `json:"totalFeatured"`
}

// SoftwareListRequest represents query parameters for listing software.
type SoftwareListRequest struct {
	Category string `form:"category"` // Category ID or "all" (default: all)
	Search   string `form:"search"`   // Free-text search term
	Sort     string `form:"sort"`     // downloads, rating, name, date (default: downloads)
	Page     int    `form:"page"`     // Page number (default: 1)
	PageSize int    `form:"pageSize"` // Items per page (default: 20, max: 100)
}

// SoftwareListResponse represents the response for listing software.
type SoftwareListResponse struct {
	Items    []SoftwareItem `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// SoftwareDetailResponse represents a software item with its derived views.
type SoftwareDetailResponse struct {
	Software       SoftwareItem   `json:"software"`
	Category       Category       `json:"category"`
	Icon           Icon           `json:"icon"`
	Related        []SoftwareItem `json:"related"`
	FeatureReasons []string       `json:"featureReasons,omitempty"`
	ReleasedAgo    string         `json:"releasedAgo"`
}

// CategoryDetailResponse represents a category and its software.
type CategoryDetailResponse struct {
	Category CategoryStat   `json:"category"`
	Items    []SoftwareItem `json:"items"`
}

// SystemConfigResponse exposes public runtime settings to the frontend.
type SystemConfigResponse struct {
	SiteName         string `json:"siteName"`
	CountdownSeconds int    `json:"countdownSeconds"`
}
