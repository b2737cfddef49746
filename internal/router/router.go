// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package router provides HTTP routing configuration for the DownloadHub server.
package router

import (
	"html/template"

	"github.com/lazycatapps/downloadhub/internal/handler"
	"github.com/lazycatapps/downloadhub/internal/middleware"
	"github.com/lazycatapps/downloadhub/internal/types"

	"github.com/gin-gonic/gin"
)

// staticPages lists the slugs served at the site root, e.g. /faq.
var staticPages = []string{"faq", "contact", "dmca", "privacy", "terms"}

// Router manages HTTP request routing and handler registration.
// It holds references to the API handlers and the HTML page handler.
type Router struct {
	catalogHandler *handler.CatalogHandler
	gateHandler    *handler.GateHandler
	pageHandler    *handler.PageHandler
	systemHandler  *handler.SystemHandler
	webHandler     *handler.WebHandler
}

// New creates a new Router instance with the provided handlers.
func New(
	catalogHandler *handler.CatalogHandler,
	gateHandler *handler.GateHandler,
	pageHandler *handler.PageHandler,
	systemHandler *handler.SystemHandler,
	webHandler *handler.WebHandler,
) *Router {
	return &Router{
		catalogHandler: catalogHandler,
		gateHandler:    gateHandler,
		pageHandler:    pageHandler,
		systemHandler:  systemHandler,
		webHandler:     webHandler,
	}
}

// Setup initializes the Gin engine with middleware, templates and routes.
// It configures the following middleware in order:
//  1. RequestID - X-Request-ID assignment
//  2. gin.Logger() - HTTP request logging
//  3. gin.Recovery() - Panic recovery
//  4. CORS - Cross-Origin Resource Sharing
//
// Returns a configured *gin.Engine ready to serve HTTP requests.
func (r *Router) Setup(cfg *types.Config, templates *template.Template) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Disable trusted proxy feature for security
	_ = engine.SetTrustedProxies(nil)

	engine.SetHTMLTemplate(templates)

	r.registerRoutes(engine)
	r.registerPages(engine)

	return engine
}

// registerRoutes registers all API routes under /api/v1 prefix.
// Available endpoints:
//   - GET    /health               - Health check
//   - GET    /system/config        - Site name and countdown length
//   - GET    /software             - Query software (category, search, sort, page, pageSize)
//   - GET    /software/:id         - Software details with related items
//   - GET    /categories           - Category statistics
//   - GET    /categories/:id       - Category with its software (sort)
//   - GET    /featured             - Featured software
//   - GET    /latest               - Latest releases
//   - GET    /popular              - Most downloaded software
//   - GET    /pages                - Static page metadata
//   - GET    /pages/:slug          - Rendered static page (search)
//   - POST   /download/:id/:part   - Resolve a download and open a gate session
//   - GET    /gate/:sid            - Gate session state
//   - GET    /gate/:sid/events     - Stream gate countdown via SSE
//   - POST   /gate/:sid/now        - Hand off immediately
//   - DELETE /gate/:sid            - Cancel a gate session
func (r *Router) registerRoutes(engine *gin.Engine) {
	api := engine.Group("/api/v1")
	{
		api.GET("/health", r.systemHandler.Health)
		api.GET("/system/config", r.systemHandler.GetSystemConfig)

		// Catalog endpoints
		api.GET("/software", r.catalogHandler.ListSoftware)
		api.GET("/software/:id", r.catalogHandler.GetSoftware)
		api.GET("/categories", r.catalogHandler.ListCategories)
		api.GET("/categories/:id", r.catalogHandler.GetCategory)
		api.GET("/featured", r.catalogHandler.ListFeatured)
		api.GET("/latest", r.catalogHandler.ListLatest)
		api.GET("/popular", r.catalogHandler.ListPopular)

		// Static page endpoints
		api.GET("/pages", r.pageHandler.ListPages)
		api.GET("/pages/:slug", r.pageHandler.GetPage)

		// Download gate endpoints
		api.POST("/download/:id/:part", r.gateHandler.OpenSession)
		api.GET("/gate/:sid", r.gateHandler.GetSession)
		api.GET("/gate/:sid/events", r.gateHandler.StreamEvents)
		api.POST("/gate/:sid/now", r.gateHandler.DownloadNow)
		api.DELETE("/gate/:sid", r.gateHandler.CancelSession)
	}
}

// registerPages registers the server-rendered HTML pages.
func (r *Router) registerPages(engine *gin.Engine) {
	engine.GET("/", r.webHandler.Home)
	engine.GET("/categories", r.webHandler.Categories)
	engine.GET("/categories/:categoryId", r.webHandler.Category)
	engine.GET("/featured", r.webHandler.Featured)
	engine.GET("/latest", r.webHandler.Latest)
	engine.GET("/popular", r.webHandler.Popular)
	engine.GET("/software/:id", r.webHandler.Software)
	engine.GET("/download/:id/:part", r.webHandler.Download)

	for _, slug := range staticPages {
		engine.GET("/"+slug, r.webHandler.Page(slug))
	}

	engine.NoRoute(r.webHandler.NotFound)
}
