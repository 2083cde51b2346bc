package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/layouts"
	"github.com/goliatone/go-delivery/internal/links"
	"github.com/goliatone/go-delivery/internal/logging"
	"github.com/goliatone/go-delivery/internal/pagecontext"
	"github.com/goliatone/go-delivery/internal/pagination"
	"github.com/goliatone/go-delivery/internal/widgets"
	"github.com/goliatone/go-delivery/pkg/interfaces"
)

var errDependencyMissing = errors.New("delivery: dependency missing")

// Dependencies are the collaborators a Service composes.
type Dependencies struct {
	Layouts    *layouts.Resolver
	Contexts   *pagecontext.Provider
	Engine     *widgets.Engine
	Pagination *pagination.Adapter
	Links      *links.Resolver
	Logger     interfaces.Logger
}

// Service composes pages, listings and article detail pages.
type Service struct {
	layouts    *layouts.Resolver
	contexts   *pagecontext.Provider
	engine     *widgets.Engine
	pagination *pagination.Adapter
	links      *links.Resolver
	logger     interfaces.Logger
}

func NewService(deps Dependencies) (*Service, error) {
	switch {
	case deps.Layouts == nil:
		return nil, fmt.Errorf("%w: layouts", errDependencyMissing)
	case deps.Contexts == nil:
		return nil, fmt.Errorf("%w: contexts", errDependencyMissing)
	case deps.Engine == nil:
		return nil, fmt.Errorf("%w: engine", errDependencyMissing)
	case deps.Pagination == nil:
		return nil, fmt.Errorf("%w: pagination", errDependencyMissing)
	}
	return &Service{
		layouts:    deps.Layouts,
		contexts:   deps.Contexts,
		engine:     deps.Engine,
		pagination: deps.Pagination,
		links:      deps.Links,
		logger:     logging.Ensure(deps.Logger),
	}, nil
}

// ComposePage renders the layout stored under pageKey. The layout and the
// content context load in parallel; the home page always renders.
func (s *Service) ComposePage(ctx context.Context, pageKey string) (*Page, error) {
	key, err := content.NormalizeSlug(pageKey)
	if err != nil {
		return nil, unavailable("page", pageKey, err)
	}
	kind := pagecontext.KindStandalone
	if s.layouts.IsHome(key) {
		kind = pagecontext.KindHome
	}
	logger := logging.WithPageContext(s.logger, key, string(kind))

	var (
		wg         sync.WaitGroup
		resolution *layouts.Resolution
		layoutErr  error
		pageCtx    *pagecontext.Context
		contextErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		resolution, layoutErr = s.layouts.Resolve(ctx, key)
	}()
	go func() {
		defer wg.Done()
		pageCtx, contextErr = s.contexts.Build(ctx, pagecontext.Request{
			Kind:   kind,
			Window: s.pagination.Window(pagination.Chronological(), 1),
		})
	}()
	wg.Wait()

	if layoutErr != nil {
		logger.Debug("page.unavailable", "error", layoutErr)
		return nil, unavailable("page", key, layoutErr)
	}
	if contextErr != nil {
		logger.Error("page.context.failed", "error", contextErr)
		pageCtx = pagecontext.Empty(kind)
	}

	page := s.compose(ctx, key, kind, resolution.Layout, pageCtx)
	page.UsesDefault = resolution.UsesDefault
	logger.Debug("page.composed", "widgets", len(page.Widgets), "uses_default", page.UsesDefault)
	return page, nil
}

// ComposeArticle renders the detail page for the article slug.
func (s *Service) ComposeArticle(ctx context.Context, slug string) (*Page, error) {
	key, err := content.NormalizeSlug(slug)
	if err != nil {
		return nil, unavailable("article", slug, err)
	}
	pageCtx, err := s.contexts.Build(ctx, pagecontext.Request{
		Kind:  pagecontext.KindArticle,
		Scope: key,
	})
	if err != nil {
		logging.WithPageContext(s.logger, key, string(pagecontext.KindArticle)).
			Debug("article.unavailable", "error", err)
		return nil, unavailable("article", key, err)
	}
	page := s.compose(ctx, key, pagecontext.KindArticle, layouts.DefaultArticleLayout(key), pageCtx)
	if article := pageCtx.Article(); article != nil {
		page.Title = article.Title
	}
	return page, nil
}

// ComposeListing returns page pageToken of dimension. Every page re-reads the
// cumulative prefix of the feed; HasMore is true when that read came back
// full.
func (s *Service) ComposeListing(ctx context.Context, dimension pagination.Dimension, pageToken string) (*Listing, error) {
	dimension, err := normalizeDimension(dimension)
	if err != nil {
		return nil, unavailable("listing", dimension.String(), err)
	}
	logger := logging.WithDimension(s.logger, dimension.String())

	window := s.pagination.Window(dimension, pagination.ParsePage(pageToken))
	pageCtx, err := s.contexts.Build(ctx, pagecontext.Request{
		Kind:   listingKind(dimension.Kind),
		Scope:  dimension.Slug,
		Window: window,
	})
	if err != nil {
		logger.Debug("listing.unavailable", "error", err)
		return nil, unavailable("listing", dimension.String(), err)
	}

	items := pageCtx.Scoped()
	listing := &Listing{
		Dimension: dimension.String(),
		Items:     widgets.ArticleCards(items, s.links),
		HasMore:   pagination.HasMore(len(items), window),
		Page:      window.Page,
		PageSize:  window.PageSize,
		Degraded:  sliceNames(pageCtx.Degraded()),
	}
	if category := pageCtx.Category(); category != nil {
		listing.Category = &widgets.TopicLink{Slug: category.Slug, Name: category.Name, URL: s.links.Category(category.Slug)}
	}
	if tag := pageCtx.Tag(); tag != nil {
		listing.Tag = &widgets.TopicLink{Slug: tag.Slug, Name: tag.Name, URL: s.links.Tag(tag.Slug)}
	}
	if listing.HasMore {
		listing.NextURL = s.links.Listing(dimension, window.Page+1)
	}
	logger.Debug("listing.composed", "page", listing.Page, "items", len(listing.Items), "has_more", listing.HasMore)
	return listing, nil
}

func (s *Service) compose(ctx context.Context, key string, kind pagecontext.Kind, layout *content.Layout, pageCtx *pagecontext.Context) *Page {
	return &Page{
		Key:      key,
		Kind:     string(kind),
		Title:    layout.Title,
		Widgets:  s.engine.Render(ctx, layout.Widgets, pageCtx),
		Degraded: sliceNames(pageCtx.Degraded()),
	}
}

func normalizeDimension(dimension pagination.Dimension) (pagination.Dimension, error) {
	dimension.Kind = pagination.Kind(strings.ToLower(strings.TrimSpace(string(dimension.Kind))))
	if dimension.Slug != "" {
		slug, err := content.NormalizeSlug(dimension.Slug)
		if err != nil {
			return dimension, err
		}
		dimension.Slug = slug
	}
	return dimension, dimension.Validate()
}

func listingKind(kind pagination.Kind) pagecontext.Kind {
	switch kind {
	case pagination.KindCategory:
		return pagecontext.KindCategory
	case pagination.KindTag:
		return pagecontext.KindTag
	default:
		return pagecontext.KindChronological
	}
}

func sliceNames(slices []widgets.Slice) []string {
	if len(slices) == 0 {
		return nil
	}
	names := make([]string, len(slices))
	for i, slice := range slices {
		names[i] = string(slice)
	}
	return names
}
