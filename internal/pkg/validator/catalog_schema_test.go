// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package validator

import (
	"strings"
	"testing"
)

func TestValidateCatalogDocument(t *testing.T) {
	tests := []struct {
		name         string
		doc          string
		wantErr      bool
		wantSoftware int
		wantWarnings []string
	}{
		{
			name: "valid catalog",
			doc: `{
				"software": [{
					"id": "abc", "name": "ABC", "category": "development", "rating": 4.5, "downloads": 10,
					"downloadVersions": [{"name": "Standard", "parts": [{"part": 1, "size": "650 MB", "link": "https://x/1"}]}]
				}],
				"categories": [{"id": "development", "name": "Development"}]
			}`,
			wantSoftware: 1,
		},
		{
			name:    "not json",
			doc:     `{software: [`,
			wantErr: true,
		},
		{
			name:    "missing categories",
			doc:     `{"software": []}`,
			wantErr: true,
		},
		{
			name:    "rating out of range",
			doc:     `{"software": [{"id": "abc", "name": "ABC", "category": "dev", "rating": 7}], "categories": []}`,
			wantErr: true,
		},
		{
			name:    "invalid id",
			doc:     `{"software": [{"id": "Bad Id", "name": "ABC", "category": "dev"}], "categories": []}`,
			wantErr: true,
		},
		{
			name:    "zero part number",
			doc:     `{"software": [{"id": "abc", "name": "ABC", "category": "dev", "downloadVersions": [{"name": "v", "parts": [{"part": 0, "link": "l"}]}]}], "categories": []}`,
			wantErr: true,
		},
		{
			name: "integrity warnings",
			doc: `{
				"software": [
					{"id": "abc", "name": "ABC", "category": "ghost",
					 "downloadVersions": [{"name": "v", "parts": [{"part": 1, "link": "a"}, {"part": 1, "link": "b"}]}]},
					{"id": "abc", "name": "ABC again", "category": "dev"}
				],
				"categories": [{"id": "dev", "name": "Dev"}, {"id": "dev", "name": "Dev 2"}]
			}`,
			wantSoftware: 2,
			wantWarnings: []string{
				`duplicate category id "dev"`,
				`software "abc" references unknown category "ghost"`,
				`software "abc" version "v" repeats part 1`,
				`duplicate software id "abc" (first entry wins)`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := ValidateCatalogDocument([]byte(tt.doc))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if report.Software != tt.wantSoftware {
				t.Errorf("Expected %d software, got %d", tt.wantSoftware, report.Software)
			}
			if strings.Join(report.Warnings, "\n") != strings.Join(tt.wantWarnings, "\n") {
				t.Errorf("Unexpected warnings:\n%s", strings.Join(report.Warnings, "\n"))
			}
		})
	}
}

func TestCatalogSchemaCompiles(t *testing.T) {
	if _, err := CatalogSchema(); err != nil {
		t.Fatalf("Schema failed to compile: %v", err)
	}
}
