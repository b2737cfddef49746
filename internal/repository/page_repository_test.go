// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package repository

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPages() fstest.MapFS {
	return fstest.MapFS{
		"faq.md":     {Data: []byte("---\ntitle: FAQ\n---\n# Default FAQ\n")},
		"privacy.md": {Data: []byte("---\ntitle: Privacy\n---\n# Default privacy\n")},
		"notes.txt":  {Data: []byte("ignored")},
	}
}

func TestLayeredPageRepositoryDefaults(t *testing.T) {
	repo, err := NewLayeredPageRepository(defaultPages(), "")
	require.NoError(t, err)

	data, err := repo.Get("faq")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Default FAQ")

	slugs, err := repo.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"faq", "privacy"}, slugs)
}

func TestLayeredPageRepositoryOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "faq.md"), []byte("# Custom FAQ\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contact.md"), []byte("# Contact\n"), 0o644))

	repo, err := NewLayeredPageRepository(defaultPages(), dir)
	require.NoError(t, err)

	data, err := repo.Get("faq")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Custom FAQ")

	data, err = repo.Get("privacy")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Default privacy")

	slugs, err := repo.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"contact", "faq", "privacy"}, slugs)
}

func TestLayeredPageRepositoryBadDir(t *testing.T) {
	_, err := NewLayeredPageRepository(defaultPages(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestPageRepositoryGetMissing(t *testing.T) {
	repo, err := NewLayeredPageRepository(defaultPages(), "")
	require.NoError(t, err)

	for _, slug := range []string{"terms", "../etc/passwd", "a/b"} {
		data, err := repo.Get(slug)
		assert.NoError(t, err, slug)
		assert.Nil(t, data, slug)
	}
}
