package links

import (
	"fmt"
	"strconv"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/pagination"
	"github.com/goliatone/go-delivery/internal/runtimeconfig"
)

const (
	groupName = "frontend"

	routeHome     = "home"
	routeArticle  = "article"
	routeCategory = "category"
	routeTag      = "tag"
	routePage     = "page"
	routeFeed     = "feed"
)

// Resolver builds public URLs for delivery resources through go-urlkit.
// A nil Resolver yields empty links.
type Resolver struct {
	manager *urlkit.RouteManager
	homeKey string
}

// NewResolver registers the configured routes under a single urlkit group.
func NewResolver(cfg runtimeconfig.LinksConfig, homeKey string) *Resolver {
	paths := map[string]string{
		routeHome:     "/",
		routeArticle:  orDefault(cfg.ArticlePath, "/articles/:slug"),
		routeCategory: orDefault(cfg.CategoryPath, "/categories/:slug"),
		routeTag:      orDefault(cfg.TagPath, "/tags/:slug"),
		routePage:     orDefault(cfg.PagePath, "/pages/:slug"),
		routeFeed:     orDefault(cfg.FeedPath, "/articles"),
	}
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    groupName,
				BaseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
				Paths:   paths,
			},
		},
	})
	return &Resolver{manager: manager, homeKey: content.NormalizePageKey(homeKey)}
}

func (r *Resolver) Article(slug string) string {
	return r.link(routeArticle, slug, 0)
}

func (r *Resolver) Category(slug string) string {
	return r.link(routeCategory, slug, 0)
}

func (r *Resolver) Tag(slug string) string {
	return r.link(routeTag, slug, 0)
}

// Page links a standalone page; the home key maps to the site root.
func (r *Resolver) Page(pageKey string) string {
	if r != nil && content.NormalizePageKey(pageKey) == r.homeKey {
		return r.link(routeHome, "", 0)
	}
	return r.link(routePage, pageKey, 0)
}

// Listing links page of a paginated dimension. The first page carries no
// page query parameter.
func (r *Resolver) Listing(dimension pagination.Dimension, page int) string {
	switch dimension.Kind {
	case pagination.KindCategory:
		return r.link(routeCategory, dimension.Slug, page)
	case pagination.KindTag:
		return r.link(routeTag, dimension.Slug, page)
	default:
		return r.link(routeFeed, "", page)
	}
}

// Build resolves route with an optional slug and page, reporting failures.
func (r *Resolver) Build(route, slug string, page int) (string, error) {
	if r == nil || r.manager == nil {
		return "", fmt.Errorf("links: resolver not configured")
	}
	builder, err := r.builder(route)
	if err != nil {
		return "", err
	}
	if slug != "" {
		builder.WithParam("slug", slug)
	}
	if page > 1 {
		builder.WithQuery("page", strconv.Itoa(page))
	}
	return builder.Build()
}

func (r *Resolver) link(route, slug string, page int) string {
	url, err := r.Build(route, slug, page)
	if err != nil {
		return ""
	}
	return url
}

// builder guards against urlkit panicking on unknown groups or routes.
func (r *Resolver) builder(route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("links: route %q unavailable: %v", route, rec)
		}
	}()
	builder = r.manager.Group(groupName).Builder(route)
	if builder == nil {
		return nil, fmt.Errorf("links: route %q unavailable", route)
	}
	return builder, nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
