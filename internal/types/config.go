// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package types defines configuration types for the DownloadHub application.
package types

import "time"

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  // HTTP server configuration
	Site    SiteConfig    // Site presentation configuration
	Catalog CatalogConfig // Catalog data source configuration
	Gate    GateConfig    // Download gate configuration
	CORS    CORSConfig    // CORS policy configuration
	Log     LogConfig     // Logging configuration
}

// ServerConfig defines HTTP server listening configuration.
type ServerConfig struct {
	Host            string        // Server listening address (e.g., "0.0.0.0", "127.0.0.1")
	Port            int           // Server listening port (e.g., 8080)
	ShutdownTimeout time.Duration // Grace period for in-flight requests on shutdown
}

// SiteConfig defines values rendered into every page.
type SiteConfig struct {
	Name string // Site name shown in the header and page titles (default: "DownloadHub")
}

// CatalogConfig defines where the catalog document and static pages are read from.
type CatalogConfig struct {
	DataFile string // Path to the catalog document (.json, .yaml or .yml)
	PagesDir string // Directory with Markdown overrides for static pages (optional)
}

// GateConfig defines download gate behaviour.
type GateConfig struct {
	CountdownSeconds int           // Countdown length before the hand-off (default: 3)
	TickInterval     time.Duration // Duration of one countdown tick (default: 1s)
	SessionTTL       time.Duration // Lifetime of an idle gate session (default: 10m)
}

// CORSConfig defines Cross-Origin Resource Sharing policy.
type CORSConfig struct {
	AllowedOrigins []string // Allowed origins (e.g., ["*"], ["https://app.example.com"])
}

// LogConfig defines logging configuration.
type LogConfig struct {
	Level string // One of debug, info, warn, error (default: info)
}
