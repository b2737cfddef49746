// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lazycatapps/downloadhub/internal/models"
	"github.com/lazycatapps/downloadhub/internal/repository"
	"github.com/lazycatapps/downloadhub/internal/service"
	"github.com/lazycatapps/downloadhub/internal/types"
)

// mockLogger implements logger.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Info(format string, args ...interface{})  {}
func (m *mockLogger) Error(format string, args ...interface{}) {}
func (m *mockLogger) Debug(format string, args ...interface{}) {}

// setupTestRouter creates a test Gin router
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func testCatalog() *models.Catalog {
	return &models.Catalog{
		Software: []models.SoftwareItem{
			{
				ID: "abc", Name: "ABC Editor", Version: "2.1", Category: "development", Description: "Lightweight editor",
				Tags: []string{"editor", "professional"}, Rating: 4.7, Downloads: 50000, Featured: true,
				SoftwareInformation: &models.SoftwareInformation{ReleaseDate: "2025-06-07", License: "Freeware"},
				SystemRequirements: &models.SystemRequirements{
					Windows: &models.PlatformRequirements{OS: "Windows 10", Memory: "4 GB"},
				},
				DownloadVersions: []models.DownloadVersion{
					{Name: "Standard", Parts: []models.DownloadPart{{Part: 1, Size: "650 MB", Link: "https://x/1"}}},
				},
			},
			{
				ID: "xyz", Name: "XYZ Player", Category: "multimedia", Description: "Media player",
				Rating: 4.0, Downloads: 9000,
				DownloadVersions: []models.DownloadVersion{
					{Name: "Full", Parts: []models.DownloadPart{
						{Part: 1, Size: "1 GB", Link: "https://y/1"},
						{Part: 2, Size: "200 MB", Link: "https://y/2"},
					}},
				},
			},
			{ID: "ide", Name: "Big IDE", Category: "development", Description: "IDE", Rating: 4.9, Downloads: 70000},
		},
		Categories: []models.Category{
			{ID: "development", Name: "Development", Description: "Tools for developers"},
			{ID: "multimedia", Name: "Multimedia"},
		},
	}
}

var testPages = fstest.MapFS{
	"faq.md": {Data: []byte(`---
title: FAQ
searchable: true
---
## General Questions

### Is {{site}} free?

Yes.

## Download Issues

### My download is slow

Try a mirror.
`)},
	"terms.md": {Data: []byte("---\ntitle: Terms of Service\n---\n# Terms\n\nBe **nice**.\n")},
}

type testServices struct {
	catalog service.CatalogService
	gate    service.GateService
	pages   service.PageService
}

func newTestServices(t *testing.T, tick time.Duration) *testServices {
	t.Helper()

	catalogRepo := repository.NewStaticCatalogRepository(testCatalog())
	pageRepo, err := repository.NewLayeredPageRepository(testPages, "")
	if err != nil {
		t.Fatalf("Failed to create page repository: %v", err)
	}

	now := func() time.Time { return time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC) }
	gate := service.NewGateService(
		catalogRepo,
		repository.NewInMemoryGateSessionRepository(),
		&types.GateConfig{CountdownSeconds: 3, TickInterval: tick, SessionTTL: time.Minute},
		&mockLogger{},
	)
	t.Cleanup(gate.Stop)

	return &testServices{
		catalog: service.NewCatalogServiceWithClock(catalogRepo, &mockLogger{}, now),
		gate:    gate,
		pages:   service.NewPageService(pageRepo, "DownloadHub", &mockLogger{}),
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v. Body: %s", err, w.Body.String())
	}
	return response
}
