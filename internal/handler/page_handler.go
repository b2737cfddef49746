// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lazycatapps/downloadhub/internal/pkg/logger"
	"github.com/lazycatapps/downloadhub/internal/service"
)

// PageHandler handles static page API requests.
type PageHandler struct {
	pageService service.PageService
	logger      logger.Logger
}

// NewPageHandler creates a new page handler instance.
func NewPageHandler(pageService service.PageService, logger logger.Logger) *PageHandler {
	return &PageHandler{
		pageService: pageService,
		logger:      logger,
	}
}

// ListPages handles GET /api/v1/pages - Page metadata in display order.
func (h *PageHandler) ListPages(c *gin.Context) {
	pages, err := h.pageService.ListPages()
	if err != nil {
		respondError(c, h.logger, "List pages", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// GetPage handles GET /api/v1/pages/:slug - Rendered page, optionally filtered by ?search=.
func (h *PageHandler) GetPage(c *gin.Context) {
	slug := c.Param("slug")

	page, err := h.pageService.GetPage(slug, c.Query("search"))
	if err != nil {
		respondError(c, h.logger, "Get page "+slug, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
