// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package models defines data structures for the DownloadHub application.
package models

import "strings"

// Unknown is the display value for any missing optional field.
const Unknown = "Unknown"

// SoftwareItem represents one catalog entry.
// Catalog entries are loaded once at startup and never mutated.
type SoftwareItem struct {
	ID          string   `json:"id"`                 // Unique software identifier
	Name        string   `json:"name"`               // Display name
	FullName    string   `json:"fullName,omitempty"` // Long display name (optional)
	Version     string   `json:"version"`            // Current version label
	Category    string   `json:"category"`           // Category ID (foreign key into Catalog.Categories)
	Description string   `json:"description"`        // Short description
	Tags        []string `json:"tags"`               // Free-form tags used by search
	Rating      float64  `json:"rating"`             // User rating, 0.0 to 5.0
	Downloads   int64    `json:"downloads"`          // Download counter
	Featured    bool     `json:"featured"`           // Editor's pick flag
	Image       string   `json:"image,omitempty"`    // Screenshot or logo URL (optional)
	Size        string   `json:"size,omitempty"`     // Headline download size (optional)

	DetailedDescription string   `json:"detailedDescription,omitempty"`
	Features            []string `json:"features,omitempty"`
	Changelog           []string `json:"changelog,omitempty"`

	SystemRequirements  *SystemRequirements  `json:"systemRequirements,omitempty"`
	SoftwareInformation *SoftwareInformation `json:"softwareInformation,omitempty"`

	DownloadVersions []DownloadVersion `json:"downloadVersions"` // Ordered download versions
}

// SoftwareInformation holds optional publishing metadata.
type SoftwareInformation struct {
	ReleaseDate  string `json:"releaseDate,omitempty"`  // Release date (RFC3339, YYYY-MM-DD, YYYY-MM or YYYY)
	FileSize     string `json:"fileSize,omitempty"`     // e.g. "1.2 GB"
	License      string `json:"license,omitempty"`      // e.g. "Freeware"
	Developer    string `json:"developer,omitempty"`    // Publisher name
	Architecture string `json:"architecture,omitempty"` // e.g. "64-bit"
	FileFormat   string `json:"fileFormat,omitempty"`   // e.g. ".exe"
}

// SystemRequirements holds per-platform requirements.
type SystemRequirements struct {
	Windows *PlatformRequirements `json:"windows,omitempty"`
	Mac     *PlatformRequirements `json:"mac,omitempty"`
}

// PlatformRequirements describes minimum hardware and OS for one platform.
type PlatformRequirements struct {
	OS        string `json:"os,omitempty"`
	Processor string `json:"processor,omitempty"`
	Memory    string `json:"memory,omitempty"`
	Storage   string `json:"storage,omitempty"`
	Graphics  string `json:"graphics,omitempty"`
	Display   string `json:"display,omitempty"`
}

// DownloadVersion is a labelled set of download parts.
// One part is a single file; more than one part is a split archive.
type DownloadVersion struct {
	Name  string         `json:"name"`  // e.g. "Standard Edition"
	Parts []DownloadPart `json:"parts"` // Ordered parts, part numbers unique within the version
}

// IsSplitArchive reports whether the version must be downloaded as a set.
func (v *DownloadVersion) IsSplitArchive() bool {
	return len(v.Parts) > 1
}

// FindPart returns the part with the given number, or nil.
func (v *DownloadVersion) FindPart(number int) *DownloadPart {
	for i := range v.Parts {
		if v.Parts[i].Part == number {
			return &v.Parts[i]
		}
	}
	return nil
}

// DownloadPart is one downloadable file.
type DownloadPart struct {
	Part int    `json:"part"` // Part number, starting at 1
	Size string `json:"size"` // Human readable size, e.g. "650 MB"
	Link string `json:"link"` // External download URL
}

// Category groups software items.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog is the full static data set.
type Catalog struct {
	Software   []SoftwareItem `json:"software"`
	Categories []Category     `json:"categories"`
}

// Info returns the software information block, never nil.
func (s *SoftwareItem) Info() SoftwareInformation {
	if s.SoftwareInformation == nil {
		return SoftwareInformation{}
	}
	return *s.SoftwareInformation
}

// DisplayName returns FullName when set, otherwise Name.
func (s *SoftwareItem) DisplayName() string {
	if s.FullName != "" {
		return s.FullName
	}
	return s.Name
}

// FileSize returns the information file size, then the headline size, then Unknown.
func (s *SoftwareItem) FileSize() string {
	if info := s.Info(); info.FileSize != "" {
		return info.FileSize
	}
	if s.Size != "" {
		return s.Size
	}
	return Unknown
}

// HasTag reports whether the item carries the tag (case-insensitive).
func (s *SoftwareItem) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// OrUnknown returns v, or Unknown when v is empty.
func OrUnknown(v string) string {
	if v == "" {
		return Unknown
	}
	return v
}
