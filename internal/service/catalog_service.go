// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package service provides business logic for the DownloadHub application.
package service

import (
	"time"

	"github.com/lazycatapps/downloadhub/internal/catalog"
	"github.com/lazycatapps/downloadhub/internal/models"
	apperrors "github.com/lazycatapps/downloadhub/internal/pkg/errors"
	"github.com/lazycatapps/downloadhub/internal/pkg/logger"
	"github.com/lazycatapps/downloadhub/internal/pkg/validator"
	"github.com/lazycatapps/downloadhub/internal/repository"
)

// CatalogService defines the interface for catalog browsing operations.
type CatalogService interface {
	// Query runs the filter, search and sort pipeline over the whole catalog.
	// Only an unknown sort key is an error.
	Query(category, search, sort string) ([]models.SoftwareItem, error)

	// ListSoftware runs Query and paginates the result.
	ListSoftware(req *models.SoftwareListRequest) (*models.SoftwareListResponse, error)

	// GetSoftware retrieves one software item with its derived views.
	GetSoftware(id string) (*models.SoftwareDetailResponse, error)

	// Categories returns every category in catalog order.
	Categories() []models.Category

	// CategoryStats aggregates per-category and catalog-wide counters.
	CategoryStats() models.CatalogStats

	// GetCategory retrieves a category with its software sorted by sort.
	GetCategory(id, sort string) (*models.CategoryDetailResponse, error)

	// RelatedCategories returns other categories to suggest next to id.
	RelatedCategories(id string) []models.CategoryStat

	// Featured returns featured items, most downloaded first.
	Featured() []models.SoftwareItem

	// Latest returns dated items, newest first.
	Latest() []models.SoftwareItem

	// Popular returns every item, most downloaded first.
	Popular() []models.SoftwareItem
}

// relatedCategoriesLimit is the number of related categories shown on a category page.
const relatedCategoriesLimit = 3

// catalogServiceImpl implements CatalogService.
type catalogServiceImpl struct {
	repo   repository.CatalogRepository
	logger logger.Logger
	now    func() time.Time
}

// NewCatalogService creates a new catalog service instance.
func NewCatalogService(repo repository.CatalogRepository, log logger.Logger) CatalogService {
	return NewCatalogServiceWithClock(repo, log, time.Now)
}

// NewCatalogServiceWithClock creates a catalog service with a custom clock.
// This is useful for testing relative release dates.
func NewCatalogServiceWithClock(repo repository.CatalogRepository, log logger.Logger, now func() time.Time) CatalogService {
	return &catalogServiceImpl{
		repo:   repo,
		logger: log,
		now:    now,
	}
}

// Query runs the filter, search and sort pipeline over the whole catalog.
// Only an unknown sort key is an error.
func (s *catalogServiceImpl) Query(category, search, sort string) ([]models.SoftwareItem, error) {
	// Category and search never fail: unknown categories match nothing
	if err := validator.ValidateSortKey(sort); err != nil {
		return nil, apperrors.InvalidInput(err)
	}
	search = validator.ClampSearchTerm(search)

	items := catalog.Query(s.repo.Software(), category, search, sort)
	s.logger.Debug("Catalog query category=%q search=%q sort=%q matched %d items", category, search, sort, len(items))
	return items, nil
}

// ListSoftware runs Query and paginates the result.
func (s *catalogServiceImpl) ListSoftware(req *models.SoftwareListRequest) (*models.SoftwareListResponse, error) {
	if err := validator.ValidatePagination(req.Page, req.PageSize); err != nil {
		return nil, apperrors.InvalidInput(err)
	}

	items, err := s.Query(req.Category, req.Search, req.Sort)
	if err != nil {
		return nil, err
	}

	page, total, pageNum, pageSize := catalog.Paginate(items, req.Page, req.PageSize)
	return &models.SoftwareListResponse{
		Items:    page,
		Total:    total,
		Page:     pageNum,
		PageSize: pageSize,
	}, nil
}

// GetSoftware retrieves one software item with its derived views.
func (s *catalogServiceImpl) GetSoftware(id string) (*models.SoftwareDetailResponse, error) {
	if err := validator.ValidateSoftwareID(id); err != nil {
		return nil, apperrors.InvalidInput(err)
	}

	item, err := s.repo.GetSoftware(id)
	if err != nil {
		return nil, apperrors.WrapInternal(err, "Failed to load software")
	}
	if item == nil {
		s.logger.Debug("Software not found: %s", id)
		return nil, apperrors.ErrSoftwareNotFound
	}

	category, _ := catalog.FindCategory(s.repo.Categories(), item.Category)

	resp := &models.SoftwareDetailResponse{
		Software:    *item,
		Category:    category,
		Icon:        catalog.IconFor(item.Category),
		Related:     catalog.Related(s.repo.Software(), item, catalog.DefaultRelatedLimit),
		ReleasedAgo: catalog.TimeAgo(item.Info().ReleaseDate, s.now()),
	}
	if item.Featured {
		resp.FeatureReasons = catalog.FeatureReasons(item)
	}
	return resp, nil
}

// Categories returns every category in catalog order.
func (s *catalogServiceImpl) Categories() []models.Category {
	return s.repo.Categories()
}

// CategoryStats aggregates per-category and catalog-wide counters.
func (s *catalogServiceImpl) CategoryStats() models.CatalogStats {
	return catalog.CategoryStats(s.repo.Catalog())
}

// GetCategory retrieves a category with its software sorted by sort.
func (s *catalogServiceImpl) GetCategory(id, sort string) (*models.CategoryDetailResponse, error) {
	if err := validator.ValidateID("categoryId", id); err != nil {
		return nil, apperrors.InvalidInput(err)
	}
	if err := validator.ValidateSortKey(sort); err != nil {
		return nil, apperrors.InvalidInput(err)
	}

	stat, ok := catalog.StatFor(s.repo.Catalog(), id)
	if !ok {
		s.logger.Debug("Category not found: %s", id)
		return nil, apperrors.ErrCategoryNotFound
	}

	return &models.CategoryDetailResponse{
		Category: stat,
		Items:    catalog.Query(s.repo.Software(), id, "", sort),
	}, nil
}

// RelatedCategories returns other categories to suggest next to id.
func (s *catalogServiceImpl) RelatedCategories(id string) []models.CategoryStat {
	cat := s.repo.Catalog()
	related := catalog.RelatedCategories(cat.Categories, id, relatedCategoriesLimit)

	stats := make([]models.CategoryStat, 0, len(related))
	for _, c := range related {
		stat, _ := catalog.StatFor(cat, c.ID)
		stats = append(stats, stat)
	}
	return stats
}

// Featured returns featured items, most downloaded first.
func (s *catalogServiceImpl) Featured() []models.SoftwareItem {
	return catalog.Featured(s.repo.Software())
}

// Latest returns dated items, newest first.
func (s *catalogServiceImpl) Latest() []models.SoftwareItem {
	return catalog.Latest(s.repo.Software())
}

// Popular returns every item, most downloaded first.
func (s *catalogServiceImpl) Popular() []models.SoftwareItem {
	return catalog.Popular(s.repo.Software())
}
