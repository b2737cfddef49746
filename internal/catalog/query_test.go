// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazycatapps/downloadhub/internal/models"
)

func released(date string) *models.SoftwareInformation {
	return &models.SoftwareInformation{ReleaseDate: date}
}

func sampleItems() []models.SoftwareItem {
	return []models.SoftwareItem{
		{ID: "chrome", Name: "Google Chrome", Category: "general", Description: "Fast web browser", Tags: []string{"browser", "web"}, Rating: 4.6, Downloads: 234000, Featured: true, SoftwareInformation: released("2024-05-01")},
		{ID: "vscode", Name: "Visual Studio Code", Category: "development", Description: "Code editor", Tags: []string{"editor", "ide"}, Rating: 4.8, Downloads: 156000, Featured: true, SoftwareInformation: released("2024-07-15")},
		{ID: "gimp", Name: "GIMP", Category: "graphic", Description: "Image manipulation program", Tags: []string{"photo", "professional"}, Rating: 4.2, Downloads: 89000},
		{ID: "notepad", Name: "notepad++", Category: "development", Description: "Text editor for Windows", Tags: []string{"editor"}, Rating: 4.6, Downloads: 89000, SoftwareInformation: released("not a date")},
		{ID: "avast", Name: "Avast Antivirus", Category: "security", Description: "Free antivirus", Tags: []string{"security"}, Rating: 4.1, Downloads: 125000, SoftwareInformation: released("2023-11")},
	}
}

func ids(items []models.SoftwareItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestQueryEmptyTermPassthrough(t *testing.T) {
	items := sampleItems()

	got := Query(items, AllCategories, "", "downloads")

	assert.Equal(t, []string{"chrome", "vscode", "avast", "gimp", "notepad"}, ids(got))
}

func TestQueryEmptyCategoryMeansAll(t *testing.T) {
	items := sampleItems()

	assert.Equal(t, ids(Query(items, AllCategories, "", "name")), ids(Query(items, "", "", "name")))
}

func TestQueryUnknownCategoryYieldsEmpty(t *testing.T) {
	got := Query(sampleItems(), "nonexistent-id", "", "name")

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQuerySearchIsCaseInsensitive(t *testing.T) {
	items := sampleItems()

	for _, term := range []string{"CHROME", "chrome", "  Chrome  "} {
		t.Run(term, func(t *testing.T) {
			got := Query(items, AllCategories, term, "downloads")
			assert.Equal(t, []string{"chrome"}, ids(got))
		})
	}
}

func TestQuerySearchMatchesDescriptionAndTags(t *testing.T) {
	items := sampleItems()

	testCases := []struct {
		name     string
		term     string
		expected []string
	}{
		{"description", "antivirus", []string{"avast"}},
		{"tag", "ide", []string{"vscode"}},
		{"tag shared by two", "editor", []string{"vscode", "notepad"}},
		{"substring inside tag", "rofession", []string{"gimp"}},
		{"no match", "kubernetes", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Query(items, AllCategories, tc.term, "downloads")
			assert.Equal(t, tc.expected, ids(got))
		})
	}
}

func TestQueryFilterComposability(t *testing.T) {
	items := sampleItems()

	for _, category := range []string{AllCategories, "development", "graphic", "nonexistent-id"} {
		for _, term := range []string{"", "editor", "e", "zzz"} {
			categoryFirst := Search(FilterCategory(items, category), term)
			searchFirst := FilterCategory(Search(items, term), category)
			assert.Equal(t, ids(categoryFirst), ids(searchFirst), "category=%s term=%s", category, term)
		}
	}
}

func TestQuerySortStability(t *testing.T) {
	items := []models.SoftwareItem{
		{ID: "a", Name: "Same", Downloads: 10, Rating: 4.0},
		{ID: "b", Name: "Same", Downloads: 20, Rating: 4.0},
		{ID: "c", Name: "Same", Downloads: 10, Rating: 4.0},
		{ID: "d", Name: "Same", Downloads: 20, Rating: 4.0},
	}

	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(Query(items, AllCategories, "", "downloads")))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(Query(items, AllCategories, "", "rating")))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(Query(items, AllCategories, "", "name")))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(Query(items, AllCategories, "", "date")))
}

func TestQuerySortByRating(t *testing.T) {
	got := Query(sampleItems(), AllCategories, "", "rating")

	// chrome and notepad tie at 4.6 and keep input order
	assert.Equal(t, []string{"vscode", "chrome", "notepad", "gimp", "avast"}, ids(got))
}

func TestQuerySortByNameIsLocaleAware(t *testing.T) {
	items := []models.SoftwareItem{
		{ID: "zeta", Name: "zeta"},
		{ID: "alpha", Name: "Alpha"},
		{ID: "eclair", Name: "éclair"},
		{ID: "beta", Name: "beta"},
	}

	got := Query(items, AllCategories, "", "name")

	assert.Equal(t, []string{"alpha", "beta", "eclair", "zeta"}, ids(got))
}

func TestQuerySortByDateMissingLast(t *testing.T) {
	got := Query(sampleItems(), AllCategories, "", "date")

	// gimp has no information block, notepad has an unparseable date
	assert.Equal(t, []string{"vscode", "chrome", "avast", "gimp", "notepad"}, ids(got))
}

func TestQueryUnknownSortFallsBackToDownloads(t *testing.T) {
	items := sampleItems()

	assert.Equal(t, ids(Query(items, AllCategories, "", "downloads")), ids(Query(items, AllCategories, "", "size")))
}

func TestQueryIsIdempotentAndDoesNotMutate(t *testing.T) {
	items := sampleItems()
	before := ids(items)

	first := Query(items, "development", "e", "name")
	second := Query(items, "development", "e", "name")

	assert.Equal(t, first, second)
	assert.Equal(t, before, ids(items))
}

func TestQueryEmptyCollection(t *testing.T) {
	got := Query(nil, AllCategories, "anything", "date")

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseDate(t *testing.T) {
	testCases := []struct {
		value string
		ok    bool
	}{
		{"2024-05-01T10:00:00Z", true},
		{"2024-05-01", true},
		{"2024-05", true},
		{"2024", true},
		{"", false},
		{"   ", false},
		{"May 2024", false},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			_, ok := ParseDate(tc.value)
			assert.Equal(t, tc.ok, ok)
		})
	}
}
