// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package web embeds the HTML templates and default static pages of the site.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/lazycatapps/downloadhub/internal/catalog"
	"github.com/lazycatapps/downloadhub/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed pages/*.md
var pagesFS embed.FS

// SortOption is one entry of the sort selector on list pages.
type SortOption struct {
	Value string
	Label string
}

// SortOptions lists the sort keys offered to visitors, default first.
var SortOptions = []SortOption{
	{Value: "downloads", Label: "Most Downloaded"},
	{Value: "rating", Label: "Highest Rated"},
	{Value: "name", Label: "Name (A-Z)"},
	{Value: "date", Label: "Newest First"},
}

// Pages returns the default static pages (faq, contact, dmca, privacy, terms).
func Pages() fs.FS {
	sub, err := fs.Sub(pagesFS, "pages")
	if err != nil {
		panic(err) // Embedded layout is fixed at build time
	}
	return sub
}

// Templates parses the embedded HTML templates.
// now is used for relative release dates.
func Templates(now func() time.Time) (*template.Template, error) {
	tpl, err := template.New("").Funcs(FuncMap(now)).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("cannot parse templates: %w", err)
	}
	return tpl, nil
}

// FuncMap returns the helpers available to the templates.
func FuncMap(now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"formatCount": catalog.FormatCount,
		"icon":        catalog.IconFor,
		"rating": func(r float64) string {
			return fmt.Sprintf("%.1f", r)
		},
		"badge": func(item models.SoftwareItem) string {
			return catalog.FeaturedBadge(&item)
		},
		"displayName": func(item models.SoftwareItem) string {
			return item.DisplayName()
		},
		"fileSize": func(item models.SoftwareItem) string {
			return item.FileSize()
		},
		"info": func(item models.SoftwareItem) models.SoftwareInformation {
			return item.Info()
		},
		"orUnknown": models.OrUnknown,
		"ago": func(item models.SoftwareItem) string {
			return catalog.TimeAgo(item.Info().ReleaseDate, now())
		},
		"add": func(a, b int) int {
			return a + b
		},
		"percent": func(p float64) int {
			return int(p * 100)
		},
		"trusted": func(s string) template.HTML {
			return template.HTML(s) // Rendered from site-owned Markdown
		},
		"year": func() int {
			return now().Year()
		},
		"dict": dict,
	}
}

// dict builds a map from alternating keys and values, for passing several
// values to a nested template.
func dict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict expects an even number of arguments, got %d", len(pairs))
	}
	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// QueryForm is the data of the search/category/sort form on list pages.
type QueryForm struct {
	Action       string
	Search       string
	Category     string
	Sort         string
	ShowCategory bool
	Categories   []models.Category
	SortOptions  []SortOption
}
