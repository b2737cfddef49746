// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lazycatapps/downloadhub/internal/catalog"
	apperrors "github.com/lazycatapps/downloadhub/internal/pkg/errors"
	"github.com/lazycatapps/downloadhub/internal/pkg/logger"
	"github.com/lazycatapps/downloadhub/internal/pkg/validator"
	"github.com/lazycatapps/downloadhub/internal/service"
	"github.com/lazycatapps/downloadhub/internal/web"
)

// WebHandler renders the HTML pages of the site.
type WebHandler struct {
	catalogService service.CatalogService
	gateService    service.GateService
	pageService    service.PageService
	siteName       string
	logger         logger.Logger
}

// NewWebHandler creates a new web handler instance.
// The engine serving it must have the web templates loaded.
func NewWebHandler(
	catalogService service.CatalogService,
	gateService service.GateService,
	pageService service.PageService,
	siteName string,
	logger logger.Logger,
) *WebHandler {
	return &WebHandler{
		catalogService: catalogService,
		gateService:    gateService,
		pageService:    pageService,
		siteName:       siteName,
		logger:         logger,
	}
}

// Home handles GET / - Catalog search with featured software and top categories.
func (h *WebHandler) Home(c *gin.Context) {
	form := h.queryForm(c, "/", true)

	items, err := h.catalogService.Query(form.Category, form.Search, form.Sort)
	if err != nil {
		h.renderError(c, err)
		return
	}

	featured := h.catalogService.Featured()
	if len(featured) > catalog.PodiumSize {
		featured = featured[:catalog.PodiumSize]
	}

	h.render(c, http.StatusOK, "home.html", "", gin.H{
		"Form":     form,
		"Items":    items,
		"Filtered": form.Search != "" || (form.Category != "" && form.Category != catalog.AllCategories),
		"Featured": featured,
		"Stats":    h.catalogService.CategoryStats(),
	})
}

// Categories handles GET /categories
func (h *WebHandler) Categories(c *gin.Context) {
	h.render(c, http.StatusOK, "categories.html", "Categories", gin.H{
		"Stats": h.catalogService.CategoryStats(),
	})
}

// Category handles GET /categories/:categoryId
func (h *WebHandler) Category(c *gin.Context) {
	id := c.Param("categoryId")
	form := h.queryForm(c, "/categories/"+id, false)

	detail, err := h.catalogService.GetCategory(id, form.Sort)
	if err != nil {
		h.renderError(c, err)
		return
	}

	items := detail.Items
	if form.Search != "" {
		if items, err = h.catalogService.Query(id, form.Search, form.Sort); err != nil {
			h.renderError(c, err)
			return
		}
	}

	h.render(c, http.StatusOK, "category.html", detail.Category.Name, gin.H{
		"Form":        form,
		"Detail":      detail,
		"Items":       items,
		"Related":     h.catalogService.RelatedCategories(id),
		"Description": detail.Category.Description,
	})
}

// Featured handles GET /featured
func (h *WebHandler) Featured(c *gin.Context) {
	items := h.catalogService.Featured()
	podium := items
	if len(podium) > catalog.PodiumSize {
		podium = podium[:catalog.PodiumSize]
	}

	h.render(c, http.StatusOK, "featured.html", "Featured Software", gin.H{
		"Podium": podium,
		"Items":  items,
	})
}

// Latest handles GET /latest
func (h *WebHandler) Latest(c *gin.Context) {
	h.render(c, http.StatusOK, "latest.html", "Latest Releases", gin.H{
		"Items": h.catalogService.Latest(),
	})
}

// Popular handles GET /popular
func (h *WebHandler) Popular(c *gin.Context) {
	h.render(c, http.StatusOK, "popular.html", "Most Popular", gin.H{
		"Items": h.catalogService.Popular(),
	})
}

// Software handles GET /software/:id
func (h *WebHandler) Software(c *gin.Context) {
	detail, err := h.catalogService.GetSoftware(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render(c, http.StatusOK, "software.html", detail.Software.DisplayName(), gin.H{
		"Detail":      detail,
		"Description": detail.Software.Description,
	})
}

// Download handles GET /download/:id/:part - The countdown page.
// The countdown itself runs in a gate session opened by the page script.
func (h *WebHandler) Download(c *gin.Context) {
	part, err := validator.ParsePartNumber(c.Param("part"))
	if err != nil {
		// A malformed part number is a dead link, not a bad form submission
		h.renderNotFound(c, "Download not found")
		return
	}

	res, err := h.gateService.Resolve(c.Param("id"), part)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render(c, http.StatusOK, "download.html", "Download "+res.SoftwareName, gin.H{
		"Resolution": res,
		"Countdown":  h.gateService.CountdownSeconds(),
	})
}

// Page returns a handler rendering the static page slug, e.g. /faq.
func (h *WebHandler) Page(slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")

		page, err := h.pageService.GetPage(slug, search)
		if err != nil {
			h.renderError(c, err)
			return
		}

		h.render(c, http.StatusOK, "page.html", page.Meta.Title, gin.H{
			"Page":        page,
			"Search":      search,
			"Description": page.Meta.Description,
		})
	}
}

// NotFound handles unmatched routes. API paths get a JSON body.
func (h *WebHandler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Endpoint not found",
			"code":  "NOT_FOUND",
		})
		return
	}
	h.renderNotFound(c, "")
}

func (h *WebHandler) queryForm(c *gin.Context, action string, showCategory bool) web.QueryForm {
	return web.QueryForm{
		Action:       action,
		Search:       c.Query("search"),
		Category:     c.DefaultQuery("category", catalog.AllCategories),
		Sort:         c.DefaultQuery("sort", catalog.DefaultSort),
		ShowCategory: showCategory,
		Categories:   h.catalogService.Categories(),
		SortOptions:  web.SortOptions,
	}
}

// render adds the layout data shared by every page and renders name.
func (h *WebHandler) render(c *gin.Context, status int, name, title string, data gin.H) {
	data["Site"] = h.siteName
	data["Title"] = title
	data["Categories"] = h.catalogService.Categories()
	if _, ok := data["Description"]; !ok {
		data["Description"] = ""
	}
	c.HTML(status, name, data)
}

func (h *WebHandler) renderNotFound(c *gin.Context, message string) {
	h.render(c, http.StatusNotFound, "notfound.html", "Not Found", gin.H{
		"Message": message,
	})
}

func (h *WebHandler) renderError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.IsNotFound() {
		h.logger.Debug("Page request %s: %v", c.Request.URL.Path, err)
		h.renderNotFound(c, appErr.Message)
		return
	}

	if appErr.StatusCode >= 500 {
		h.logger.Error("Page request %s failed: %v", c.Request.URL.Path, err)
	}
	h.render(c, appErr.StatusCode, "error.html", "Error", gin.H{
		"Status":  appErr.StatusCode,
		"Message": appErr.Message,
	})
}
