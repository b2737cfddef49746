// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package handler provides HTTP request handlers.
package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/lazycatapps/downloadhub/internal/pkg/errors"
	"github.com/lazycatapps/downloadhub/internal/pkg/logger"
)

// respondError writes err as a JSON error body with the status of its AppError.
// Errors that are not AppErrors become 500 responses.
func respondError(c *gin.Context, log logger.Logger, action string, err error) {
	appErr := apperrors.From(err)

	switch {
	case appErr.IsNotFound():
		log.Debug("%s: %v", action, err)
	case appErr.StatusCode >= 500:
		log.Error("%s: %v", action, err)
	default:
		log.Debug("%s rejected: %v", action, err)
	}

	c.JSON(appErr.StatusCode, gin.H{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}
