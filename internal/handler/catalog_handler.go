// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lazycatapps/downloadhub/internal/models"
	"github.com/lazycatapps/downloadhub/internal/pkg/logger"
	"github.com/lazycatapps/downloadhub/internal/service"
)

// CatalogHandler handles catalog browsing API requests.
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         logger.Logger
}

// NewCatalogHandler creates a new catalog handler instance.
func NewCatalogHandler(catalogService service.CatalogService, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListSoftware handles GET /api/v1/software - Query and paginate software.
func (h *CatalogHandler) ListSoftware(c *gin.Context) {
	var req models.SoftwareListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Debug("Invalid list request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid request: %v", err),
			"code":  "INVALID_INPUT",
		})
		return
	}

	response, err := h.catalogService.ListSoftware(&req)
	if err != nil {
		respondError(c, h.logger, "List software", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSoftware handles GET /api/v1/software/:id - Get software details.
func (h *CatalogHandler) GetSoftware(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.catalogService.GetSoftware(id)
	if err != nil {
		respondError(c, h.logger, "Get software "+id, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ListCategories handles GET /api/v1/categories - Category statistics.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.CategoryStats())
}

// GetCategory handles GET /api/v1/categories/:id - Category with its software.
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.catalogService.GetCategory(id, c.Query("sort"))
	if err != nil {
		respondError(c, h.logger, "Get category "+id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": detail.Category,
		"items":    detail.Items,
		"related":  h.catalogService.RelatedCategories(id),
	})
}

// ListFeatured handles GET /api/v1/featured - Featured software.
func (h *CatalogHandler) ListFeatured(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.catalogService.Featured()})
}

// ListLatest handles GET /api/v1/latest - Latest releases.
func (h *CatalogHandler) ListLatest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.catalogService.Latest()})
}

// ListPopular handles GET /api/v1/popular - Most downloaded software.
func (h *CatalogHandler) ListPopular(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.catalogService.Popular()})
}
