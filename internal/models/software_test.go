// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package models

import "testing"

// TestDownloadVersion_IsSplitArchive tests single-file vs split archive detection
func TestDownloadVersion_IsSplitArchive(t *testing.T) {
	single := DownloadVersion{Name: "Standard", Parts: []DownloadPart{{Part: 1}}}
	if single.IsSplitArchive() {
		t.Error("Expected single part version not to be a split archive")
	}

	split := DownloadVersion{Name: "Full", Parts: []DownloadPart{{Part: 1}, {Part: 2}}}
	if !split.IsSplitArchive() {
		t.Error("Expected two part version to be a split archive")
	}
}

// TestDownloadVersion_FindPart tests part lookup by number
func TestDownloadVersion_FindPart(t *testing.T) {
	v := DownloadVersion{Parts: []DownloadPart{
		{Part: 1, Size: "1 GB", Link: "https://x/1"},
		{Part: 2, Size: "500 MB", Link: "https://x/2"},
	}}

	p := v.FindPart(2)
	if p == nil {
		t.Fatal("Expected part 2 to be found")
	}
	if p.Link != "https://x/2" {
		t.Errorf("Expected link 'https://x/2', got '%s'", p.Link)
	}

	if v.FindPart(3) != nil {
		t.Error("Expected part 3 not to be found")
	}
}

// TestSoftwareItem_FileSize tests the file size fallback chain
func TestSoftwareItem_FileSize(t *testing.T) {
	testCases := []struct {
		name string
		item SoftwareItem
		want string
	}{
		{"information size", SoftwareItem{Size: "1 GB", SoftwareInformation: &SoftwareInformation{FileSize: "2 GB"}}, "2 GB"},
		{"headline size", SoftwareItem{Size: "1 GB"}, "1 GB"},
		{"missing", SoftwareItem{}, Unknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.FileSize(); got != tc.want {
				t.Errorf("Expected '%s', got '%s'", tc.want, got)
			}
		})
	}
}

// TestSoftwareItem_Info tests that missing information never panics
func TestSoftwareItem_Info(t *testing.T) {
	item := SoftwareItem{ID: "abc"}
	if item.Info().ReleaseDate != "" {
		t.Error("Expected empty release date for missing information")
	}
}

// TestSoftwareItem_DisplayName tests full name preference
func TestSoftwareItem_DisplayName(t *testing.T) {
	item := SoftwareItem{Name: "Chrome"}
	if item.DisplayName() != "Chrome" {
		t.Errorf("Expected 'Chrome', got '%s'", item.DisplayName())
	}

	item.FullName = "Google Chrome"
	if item.DisplayName() != "Google Chrome" {
		t.Errorf("Expected 'Google Chrome', got '%s'", item.DisplayName())
	}
}

// TestSoftwareItem_HasTag tests case-insensitive tag matching
func TestSoftwareItem_HasTag(t *testing.T) {
	item := SoftwareItem{Tags: []string{"Professional", "video"}}
	if !item.HasTag("professional") {
		t.Error("Expected tag match to ignore case")
	}
	if item.HasTag("audio") {
		t.Error("Expected missing tag not to match")
	}
}

// TestGateState_Terminal tests terminal state detection
func TestGateState_Terminal(t *testing.T) {
	testCases := []struct {
		state GateState
		want  bool
	}{
		{GateStateCounting, false},
		{GateStateRedirecting, false},
		{GateStateOpened, true},
		{GateStateCancelled, true},
	}

	for _, tc := range testCases {
		t.Run(string(tc.state), func(t *testing.T) {
			if got := tc.state.Terminal(); got != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

// TestOrUnknown tests the missing field default
func TestOrUnknown(t *testing.T) {
	if OrUnknown("") != Unknown {
		t.Error("Expected empty value to map to Unknown")
	}
	if OrUnknown("MIT") != "MIT" {
		t.Error("Expected non-empty value to pass through")
	}
}
