// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package service

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"

	"github.com/lazycatapps/downloadhub/internal/models"
	apperrors "github.com/lazycatapps/downloadhub/internal/pkg/errors"
	"github.com/lazycatapps/downloadhub/internal/pkg/logger"
	"github.com/lazycatapps/downloadhub/internal/pkg/validator"
	"github.com/lazycatapps/downloadhub/internal/repository"
)

// PageService defines the interface for static page operations.
type PageService interface {
	// GetPage renders a page by slug. For pages marked searchable, search
	// filters the question/answer sections and drops sections left empty.
	GetPage(slug, search string) (*models.Page, error)

	// ListPages returns the metadata of every page, ordered by front matter order.
	ListPages() ([]models.Page, error)
}

// pageServiceImpl implements PageService.
type pageServiceImpl struct {
	repo     repository.PageRepository
	md       goldmark.Markdown
	siteName string
	logger   logger.Logger
}

// NewPageService creates a new page service instance.
// Occurrences of {{site}} in page sources are replaced with siteName.
func NewPageService(repo repository.PageRepository, siteName string, log logger.Logger) PageService {
	md := goldmark.New(
		goldmark.WithExtensions(
			&frontmatter.Extender{},
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	return &pageServiceImpl{
		repo:     repo,
		md:       md,
		siteName: siteName,
		logger:   log,
	}
}

// GetPage renders a page by slug.
func (s *pageServiceImpl) GetPage(slug, search string) (*models.Page, error) {
	if err := validator.ValidateSlug(slug); err != nil {
		return nil, apperrors.InvalidInput(err)
	}
	search = validator.ClampSearchTerm(search)

	source, err := s.repo.Get(slug)
	if err != nil {
		return nil, apperrors.WrapInternal(err, "Failed to read page")
	}
	if source == nil {
		s.logger.Debug("Page not found: %s", slug)
		return nil, apperrors.ErrPageNotFound
	}

	page, err := s.render(slug, source)
	if err != nil {
		s.logger.Error("Failed to render page %s: %v", slug, err)
		return nil, apperrors.WrapInternal(err, "Failed to render page")
	}

	if term := strings.ToLower(validator.NormalizeSearchTerm(search)); term != "" && page.Meta.Searchable {
		page.Sections = filterSections(page.Sections, term)
	}
	return page, nil
}

// ListPages returns the metadata of every page, ordered by front matter order.
func (s *pageServiceImpl) ListPages() ([]models.Page, error) {
	slugs, err := s.repo.List()
	if err != nil {
		return nil, apperrors.WrapInternal(err, "Failed to list pages")
	}

	pages := make([]models.Page, 0, len(slugs))
	for _, slug := range slugs {
		source, err := s.repo.Get(slug)
		if err != nil || source == nil {
			continue
		}
		meta, err := s.meta(source)
		if err != nil {
			s.logger.Error("Skipping page %s with invalid front matter: %v", slug, err)
			continue
		}
		pages = append(pages, models.Page{Slug: slug, Meta: meta})
	}

	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Meta.Order < pages[j].Meta.Order
	})
	return pages, nil
}

func (s *pageServiceImpl) expand(source []byte) []byte {
	return bytes.ReplaceAll(source, []byte("{{site}}"), []byte(s.siteName))
}

func (s *pageServiceImpl) meta(source []byte) (models.PageMeta, error) {
	ctx := parser.NewContext()
	s.md.Parser().Parse(text.NewReader(s.expand(source)), parser.WithContext(ctx))
	return decodeMeta(ctx)
}

func (s *pageServiceImpl) render(slug string, raw []byte) (*models.Page, error) {
	source := s.expand(raw)

	ctx := parser.NewContext()
	doc := s.md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	meta, err := decodeMeta(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("cannot render markdown: %w", err)
	}

	page := &models.Page{Slug: slug, Meta: meta, HTML: buf.String()}
	if meta.Searchable {
		sections, err := s.sections(doc, source)
		if err != nil {
			return nil, err
		}
		page.Sections = sections
	}
	return page, nil
}

func decodeMeta(ctx parser.Context) (models.PageMeta, error) {
	var meta models.PageMeta
	fm := frontmatter.Get(ctx)
	if fm == nil {
		return meta, nil
	}
	if err := fm.Decode(&meta); err != nil {
		return meta, fmt.Errorf("cannot decode front matter: %w", err)
	}
	return meta, nil
}

// sections groups the document into H2 sections of H3 question entries.
// The answer of an entry is every block between its H3 and the next heading.
func (s *pageServiceImpl) sections(doc ast.Node, source []byte) ([]models.PageSection, error) {
	var sections []models.PageSection
	var entry *models.PageEntry
	var answer, plain bytes.Buffer

	flush := func() {
		if entry == nil {
			return
		}
		entry.Answer = answer.String()
		entry.Text = strings.TrimSpace(plain.String())
		if len(sections) == 0 {
			sections = append(sections, models.PageSection{})
		}
		last := &sections[len(sections)-1]
		last.Entries = append(last.Entries, *entry)
		entry = nil
		answer.Reset()
		plain.Reset()
	}

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if heading, ok := node.(*ast.Heading); ok {
			switch heading.Level {
			case 2:
				flush()
				sections = append(sections, models.PageSection{Title: plainText(heading, source)})
				continue
			case 3:
				flush()
				entry = &models.PageEntry{Question: plainText(heading, source)}
				continue
			}
		}

		if entry == nil {
			continue
		}
		if err := s.md.Renderer().Render(&answer, source, node); err != nil {
			return nil, fmt.Errorf("cannot render answer: %w", err)
		}
		plain.WriteString(plainText(node, source))
		plain.WriteByte(' ')
	}
	flush()

	return sections, nil
}

// plainText concatenates the text segments below node.
func plainText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// filterSections keeps entries whose question or answer contains term and
// drops sections left without entries.
func filterSections(sections []models.PageSection, term string) []models.PageSection {
	filtered := make([]models.PageSection, 0, len(sections))
	for _, section := range sections {
		var entries []models.PageEntry
		for _, e := range section.Entries {
			if strings.Contains(strings.ToLower(e.Question), term) || strings.Contains(strings.ToLower(e.Text), term) {
				entries = append(entries, e)
			}
		}
		if len(entries) > 0 {
			filtered = append(filtered, models.PageSection{Title: section.Title, Entries: entries})
		}
	}
	return filtered
}
