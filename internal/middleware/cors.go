// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package middleware provides HTTP middleware for the DownloadHub server.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods  = "GET, POST, DELETE, OPTIONS"
	corsAllowHeaders  = "Content-Type, " + RequestIDHeader
	corsExposeHeaders = RequestIDHeader
)

// CORS creates a Cross-Origin Resource Sharing (CORS) middleware for the public API.
//
// Supported origins:
//   - "*": Allow all origins
//   - Specific origins: Only allow exact matches, reflected back with Vary: Origin
//
// The API is anonymous, so credentials are never allowed.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	wildcard := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			wildcard = true
		}
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		header := c.Writer.Header()

		ok := false
		switch {
		case wildcard:
			header.Set("Access-Control-Allow-Origin", "*")
			ok = true
		case origin != "" && allowed[origin]:
			header.Set("Access-Control-Allow-Origin", origin)
			header.Add("Vary", "Origin")
			ok = true
		}

		if ok {
			header.Set("Access-Control-Allow-Methods", corsAllowMethods)
			header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			header.Set("Access-Control-Expose-Headers", corsExposeHeaders)
		}

		// Handle preflight OPTIONS requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ParseOrigins splits a comma-separated origins string.
// Empty or whitespace-only input defaults to wildcard "*".
func ParseOrigins(originsCSV string) []string {
	var origins []string
	for _, part := range strings.Split(originsCSV, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// CORSWithOrigins creates a CORS middleware from a comma-separated origins string.
func CORSWithOrigins(originsCSV string) gin.HandlerFunc {
	return CORS(ParseOrigins(originsCSV))
}
