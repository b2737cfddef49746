// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package service

import (
	"net/http"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/lazycatapps/downloadhub/internal/repository"
)

const faqSource = `---
title: Frequently Asked Questions
description: Answers about {{site}}
order: 1
searchable: true
---
Intro text.

## General Questions

### Is {{site}} free?

Yes, browsing is **free**.

### Do I need an account?

No account is required.

## Download Issues

### My download is slow

Try a different mirror.

## Security & Safety

### Are files scanned?

Every file is scanned for malware.
`

const termsSource = `---
title: Terms of Service
order: 4
---
# Terms

### Use

Be nice.
`

func newTestPageService(t *testing.T) PageService {
	t.Helper()
	pages := fstest.MapFS{
		"faq.md":   {Data: []byte(faqSource)},
		"terms.md": {Data: []byte(termsSource)},
		"dmca.md":  {Data: []byte("# DMCA\n")},
	}
	repo, err := repository.NewLayeredPageRepository(pages, "")
	if err != nil {
		t.Fatalf("Failed to create page repository: %v", err)
	}
	return NewPageService(repo, "DownloadHub", &mockLogger{})
}

// TestPageServiceGetPage tests rendering with front matter
func TestPageServiceGetPage(t *testing.T) {
	svc := newTestPageService(t)

	page, err := svc.GetPage("faq", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if page.Meta.Title != "Frequently Asked Questions" {
		t.Errorf("Expected title from front matter, got '%s'", page.Meta.Title)
	}
	if page.Meta.Description != "Answers about DownloadHub" {
		t.Errorf("Expected site name substitution, got '%s'", page.Meta.Description)
	}
	if strings.Contains(page.HTML, "searchable") {
		t.Error("Expected front matter to be stripped from HTML")
	}
	if !strings.Contains(page.HTML, "<strong>free</strong>") {
		t.Errorf("Expected rendered markdown, got %s", page.HTML)
	}

	if len(page.Sections) != 3 {
		t.Fatalf("Expected 3 sections, got %d", len(page.Sections))
	}
	general := page.Sections[0]
	if general.Title != "General Questions" || len(general.Entries) != 2 {
		t.Errorf("Unexpected first section: %+v", general)
	}
	if general.Entries[0].Question != "Is DownloadHub free?" {
		t.Errorf("Unexpected question: %s", general.Entries[0].Question)
	}
	if !strings.Contains(general.Entries[0].Answer, "<strong>free</strong>") {
		t.Errorf("Expected rendered answer, got %s", general.Entries[0].Answer)
	}
}

// TestPageServiceSearch tests FAQ filtering
func TestPageServiceSearch(t *testing.T) {
	svc := newTestPageService(t)

	tests := []struct {
		name         string
		search       string
		wantSections []string
		wantEntries  int
	}{
		{"matches answer text", "MIRROR", []string{"Download Issues"}, 1},
		{"matches question", "account", []string{"General Questions"}, 1},
		{"matches across sections", "scan", []string{"Security & Safety"}, 1},
		{"matches every section", "is", []string{"General Questions", "Download Issues", "Security & Safety"}, 4},
		{"no matches", "bitcoin", []string{}, 0},
		{"blank search keeps all", "   ", []string{"General Questions", "Download Issues", "Security & Safety"}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.GetPage("faq", tt.search)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if len(page.Sections) != len(tt.wantSections) {
				t.Fatalf("Expected %d sections, got %d (%+v)", len(tt.wantSections), len(page.Sections), page.Sections)
			}

			entries := 0
			for i, section := range page.Sections {
				if section.Title != tt.wantSections[i] {
					t.Errorf("Expected section %s, got %s", tt.wantSections[i], section.Title)
				}
				entries += len(section.Entries)
			}
			if entries != tt.wantEntries {
				t.Errorf("Expected %d entries, got %d", tt.wantEntries, entries)
			}
		})
	}
}

// TestPageServiceNonSearchablePage tests that regular pages have no sections
func TestPageServiceNonSearchablePage(t *testing.T) {
	svc := newTestPageService(t)

	page, err := svc.GetPage("terms", "use")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if page.Sections != nil {
		t.Errorf("Expected no sections, got %+v", page.Sections)
	}

	page, err = svc.GetPage("dmca", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if page.Meta.Title != "" {
		t.Errorf("Expected empty title without front matter, got %s", page.Meta.Title)
	}
}

// TestPageServiceErrors tests missing and invalid slugs
func TestPageServiceErrors(t *testing.T) {
	svc := newTestPageService(t)

	_, err := svc.GetPage("privacy", "")
	assertAppError(t, err, "PAGE_NOT_FOUND", http.StatusNotFound)

	_, err = svc.GetPage("../secrets", "")
	assertAppError(t, err, "INVALID_INPUT", http.StatusBadRequest)

	page, err := svc.GetPage("faq", "mirror\n")
	if err != nil {
		t.Fatalf("Expected any search text to be accepted, got %v", err)
	}
	if len(page.Sections) != 1 {
		t.Errorf("Expected 1 matching section, got %d", len(page.Sections))
	}
}

// TestPageServiceListPages tests ordering by front matter
func TestPageServiceListPages(t *testing.T) {
	svc := newTestPageService(t)

	pages, err := svc.ListPages()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var slugs []string
	for _, p := range pages {
		slugs = append(slugs, p.Slug)
	}

	// dmca has no order (0), then faq (1), then terms (4)
	want := []string{"dmca", "faq", "terms"}
	if strings.Join(slugs, ",") != strings.Join(want, ",") {
		t.Errorf("Expected %v, got %v", want, slugs)
	}
}
