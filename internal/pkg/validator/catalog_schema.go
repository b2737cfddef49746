// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package validator

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lazycatapps/downloadhub/internal/models"
)

//go:embed catalog.schema.json
var catalogSchemaSource string

const catalogSchemaURL = "catalog.schema.json"

var (
	catalogSchema     *jsonschema.Schema
	catalogSchemaErr  error
	catalogSchemaOnce sync.Once
)

// CatalogSchema returns the compiled JSON schema of catalog documents.
func CatalogSchema() (*jsonschema.Schema, error) {
	catalogSchemaOnce.Do(func() {
		catalogSchema, catalogSchemaErr = jsonschema.CompileString(catalogSchemaURL, catalogSchemaSource)
	})
	return catalogSchema, catalogSchemaErr
}

// CatalogReport is the result of validating a catalog document.
// Warnings describe integrity problems the schema cannot express;
// the catalog still loads with them.
type CatalogReport struct {
	Software   int
	Categories int
	Warnings   []string
}

// ValidateCatalogDocument validates a JSON catalog document against the
// catalog schema and checks cross-record integrity.
// YAML documents must be converted to JSON first.
func ValidateCatalogDocument(data []byte) (*CatalogReport, error) {
	schema, err := CatalogSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile catalog schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalog is not valid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("catalog does not match schema: %w", err)
	}

	var catalog models.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return &CatalogReport{
		Software:   len(catalog.Software),
		Categories: len(catalog.Categories),
		Warnings:   CheckCatalogIntegrity(&catalog),
	}, nil
}

// CheckCatalogIntegrity reports duplicate ids, duplicate part numbers and
// software pointing at unknown categories.
func CheckCatalogIntegrity(catalog *models.Catalog) []string {
	var warnings []string

	categories := make(map[string]bool, len(catalog.Categories))
	for _, c := range catalog.Categories {
		if categories[c.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate category id %q", c.ID))
		}
		categories[c.ID] = true
	}

	seen := make(map[string]bool, len(catalog.Software))
	for _, item := range catalog.Software {
		if seen[item.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate software id %q (first entry wins)", item.ID))
		}
		seen[item.ID] = true

		if !categories[item.Category] {
			warnings = append(warnings, fmt.Sprintf("software %q references unknown category %q", item.ID, item.Category))
		}

		for _, version := range item.DownloadVersions {
			parts := make(map[int]bool, len(version.Parts))
			for _, p := range version.Parts {
				if parts[p.Part] {
					warnings = append(warnings, fmt.Sprintf("software %q version %q repeats part %d", item.ID, version.Name, p.Part))
				}
				parts[p.Part] = true
			}
		}
	}

	return warnings
}
