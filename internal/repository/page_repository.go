// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package repository

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// pageExt is the file extension of static page sources.
const pageExt = ".md"

// PageRepository defines read access to static page sources (Markdown with front matter).
type PageRepository interface {
	// Get returns the raw source of a page by slug.
	// Returns nil if the page does not exist.
	Get(slug string) ([]byte, error)

	// List returns all page slugs in lexical order.
	List() ([]string, error)
}

// FSPageRepository implements PageRepository over an afero filesystem.
// Pages are stored as <slug>.md at the filesystem root.
type FSPageRepository struct {
	fs afero.Fs
}

// NewFSPageRepository creates a page repository reading from fs.
func NewFSPageRepository(fs afero.Fs) *FSPageRepository {
	return &FSPageRepository{fs: fs}
}

// NewLayeredPageRepository serves embedded default pages, overridden by files in
// overrideDir when it is set. Pages in overrideDir win over defaults with the same slug.
func NewLayeredPageRepository(defaults fs.FS, overrideDir string) (*FSPageRepository, error) {
	base := afero.NewReadOnlyFs(afero.FromIOFS{FS: defaults})
	if overrideDir == "" {
		return NewFSPageRepository(base), nil
	}

	info, err := os.Stat(overrideDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open pages directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("pages path %s is not a directory", overrideDir)
	}

	layer := afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), overrideDir))
	return NewFSPageRepository(afero.NewCopyOnWriteFs(base, layer)), nil
}

// Get returns the raw source of a page by slug.
func (r *FSPageRepository) Get(slug string) ([]byte, error) {
	if strings.ContainsAny(slug, `/\`) || strings.Contains(slug, "..") {
		return nil, nil // Never leave the pages root
	}

	data, err := afero.ReadFile(r.fs, slug+pageExt)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Page not found
		}
		return nil, fmt.Errorf("failed to read page %s: %w", slug, err)
	}

	return data, nil
}

// List returns all page slugs in lexical order.
func (r *FSPageRepository) List() ([]string, error) {
	entries, err := afero.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	var slugs []string
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != pageExt {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(entry.Name(), pageExt))
	}

	sort.Strings(slugs)
	return slugs, nil
}
