// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lazycatapps/downloadhub/internal/models"
)

// SystemHandler serves health and public runtime settings.
type SystemHandler struct {
	siteName         string
	countdownSeconds int
}

// NewSystemHandler creates a new system handler.
func NewSystemHandler(siteName string, countdownSeconds int) *SystemHandler {
	return &SystemHandler{
		siteName:         siteName,
		countdownSeconds: countdownSeconds,
	}
}

// Health handles GET /api/v1/health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetSystemConfig handles GET /api/v1/system/config
// Returns the settings the download page needs
func (h *SystemHandler) GetSystemConfig(c *gin.Context) {
	c.JSON(http.StatusOK, models.SystemConfigResponse{
		SiteName:         h.siteName,
		CountdownSeconds: h.countdownSeconds,
	})
}
