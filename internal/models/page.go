// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package models

// PageMeta is the front matter of a static page.
type PageMeta struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Order       int    `yaml:"order" json:"order"`
	Searchable  bool   `yaml:"searchable" json:"searchable"` // Split into question/answer sections
}

// Page is a rendered static page.
type Page struct {
	Slug     string        `json:"slug"`
	Meta     PageMeta      `json:"meta"`
	HTML     string        `json:"html"`
	Sections []PageSection `json:"sections,omitempty"` // Question/answer sections, grouped by H2
}

// PageSection is an H2 group of question/answer entries.
type PageSection struct {
	Title   string      `json:"title"`
	Entries []PageEntry `json:"entries"`
}

// PageEntry is a single H3 question with its rendered answer.
type PageEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"` // Rendered HTML
	Text     string `json:"-"`      // Plain answer text used for search
}
