// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package repository provides the data access layer for the catalog, gate sessions and static pages.
package repository

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"

	"github.com/lazycatapps/downloadhub/internal/models"
)

// CatalogRepository defines read-only access to the software catalog.
// The catalog is loaded once and never mutated; returned slices must not be modified.
type CatalogRepository interface {
	// Software returns every software item in catalog order.
	Software() []models.SoftwareItem

	// Categories returns every category in catalog order.
	Categories() []models.Category

	// Catalog returns the whole catalog.
	Catalog() *models.Catalog

	// GetSoftware retrieves a software item by id.
	// Returns nil if the item does not exist.
	GetSoftware(id string) (*models.SoftwareItem, error)

	// GetCategory retrieves a category by id.
	// Returns nil if the category does not exist.
	GetCategory(id string) (*models.Category, error)
}

// StaticCatalogRepository implements CatalogRepository over an immutable in-memory catalog.
// Safe for concurrent reads without locking.
type StaticCatalogRepository struct {
	catalog    *models.Catalog
	software   map[string]int // Software ID to index in catalog.Software
	categories map[string]int // Category ID to index in catalog.Categories
}

// NewStaticCatalogRepository indexes the catalog for lookups.
// When ids are duplicated the first occurrence wins.
func NewStaticCatalogRepository(catalog *models.Catalog) *StaticCatalogRepository {
	if catalog == nil {
		catalog = &models.Catalog{}
	}

	r := &StaticCatalogRepository{
		catalog:    catalog,
		software:   make(map[string]int, len(catalog.Software)),
		categories: make(map[string]int, len(catalog.Categories)),
	}

	for i, s := range catalog.Software {
		if _, exists := r.software[s.ID]; !exists {
			r.software[s.ID] = i
		}
	}
	for i, c := range catalog.Categories {
		if _, exists := r.categories[c.ID]; !exists {
			r.categories[c.ID] = i
		}
	}

	return r
}

// NewFileCatalogRepository loads the catalog file from fs and indexes it.
func NewFileCatalogRepository(fs afero.Fs, path string) (*StaticCatalogRepository, error) {
	catalog, err := LoadCatalog(fs, path)
	if err != nil {
		return nil, err
	}
	return NewStaticCatalogRepository(catalog), nil
}

// Software returns every software item in catalog order.
func (r *StaticCatalogRepository) Software() []models.SoftwareItem {
	return r.catalog.Software
}

// Categories returns every category in catalog order.
func (r *StaticCatalogRepository) Categories() []models.Category {
	return r.catalog.Categories
}

// Catalog returns the whole catalog.
func (r *StaticCatalogRepository) Catalog() *models.Catalog {
	return r.catalog
}

// GetSoftware retrieves a software item by id.
func (r *StaticCatalogRepository) GetSoftware(id string) (*models.SoftwareItem, error) {
	i, exists := r.software[id]
	if !exists {
		return nil, nil // Software not found
	}
	return &r.catalog.Software[i], nil
}

// GetCategory retrieves a category by id.
func (r *StaticCatalogRepository) GetCategory(id string) (*models.Category, error) {
	i, exists := r.categories[id]
	if !exists {
		return nil, nil // Category not found
	}
	return &r.catalog.Categories[i], nil
}

// LoadCatalog reads and decodes a catalog document.
// The format is chosen by extension: .yaml/.yml as YAML, anything else as JSON.
func LoadCatalog(fs afero.Fs, path string) (*models.Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	catalog, err := DecodeCatalog(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", path, err)
	}
	return catalog, nil
}

// DecodeCatalog decodes catalog bytes. YAML is converted to JSON first so both
// formats share the same struct tags.
func DecodeCatalog(data []byte, ext string) (*models.Catalog, error) {
	if IsYAML(ext) {
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to convert YAML: %w", err)
		}
		data = converted
	}

	var catalog models.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	normalize(&catalog)
	return &catalog, nil
}

// IsYAML reports whether a file extension denotes YAML.
func IsYAML(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// normalize replaces nil lists with empty ones so JSON responses never carry null.
func normalize(catalog *models.Catalog) {
	if catalog.Software == nil {
		catalog.Software = []models.SoftwareItem{}
	}
	if catalog.Categories == nil {
		catalog.Categories = []models.Category{}
	}
	for i := range catalog.Software {
		s := &catalog.Software[i]
		if s.Tags == nil {
			s.Tags = []string{}
		}
		if s.DownloadVersions == nil {
			s.DownloadVersions = []models.DownloadVersion{}
		}
	}
}
