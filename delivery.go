package delivery

import (
	"context"

	router "github.com/goliatone/go-router"

	ingestcmd "github.com/goliatone/go-delivery/internal/commands/ingest"
	composition "github.com/goliatone/go-delivery/internal/delivery"
	"github.com/goliatone/go-delivery/internal/di"
	deliveryhttp "github.com/goliatone/go-delivery/internal/http"
	"github.com/goliatone/go-delivery/internal/ingest"
	"github.com/goliatone/go-delivery/internal/logging"
	"github.com/goliatone/go-delivery/internal/pagination"
)

// Page is a composed layout returned by ComposePage and ComposeArticle.
type Page = composition.Page

// Listing is one cumulative page of a paginated feed.
type Listing = composition.Listing

// Dimension names a paginated feed: chronological, category or tag.
type Dimension = pagination.Dimension

// ImportResult summarises an ingest run.
type ImportResult = ingest.Result

// FeedOptions tunes ImportFeed.
type FeedOptions = ingest.FeedOptions

// IngestCommands groups the go-command handlers for seeding content.
type IngestCommands = ingestcmd.HandlerSet

// Option overrides container wiring.
type Option = di.Option

// ErrPageUnavailable is reported for any page, article or listing that does
// not exist or cannot be shown.
var ErrPageUnavailable = composition.ErrPageUnavailable

var (
	WithBunDB           = di.WithBunDB
	WithStore           = di.WithStore
	WithCache           = di.WithCache
	WithLoggerProvider  = di.WithLoggerProvider
	WithMarkdownParser  = di.WithMarkdownParser
	WithWidget          = di.WithWidget
	WithCommandRegistry = di.WithCommandRegistry
)

// Chronological is the dimension of the site-wide feed.
func Chronological() Dimension { return pagination.Chronological() }

// Category is the dimension of a category feed.
func Category(slug string) Dimension { return pagination.Category(slug) }

// Tag is the dimension of a tag feed.
func Tag(slug string) Dimension { return pagination.Tag(slug) }

// IsPageUnavailable reports whether err marks a missing page.
func IsPageUnavailable(err error) bool {
	return composition.IsPageUnavailable(err)
}

// Module is the delivery runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a delivery module from cfg and optional overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// ComposePage renders the layout stored under pageKey. The home key always
// renders, falling back to the default layout.
func (m *Module) ComposePage(ctx context.Context, pageKey string) (*Page, error) {
	return m.container.Service().ComposePage(ctx, pageKey)
}

// ComposeArticle renders the detail page for an article slug.
func (m *Module) ComposeArticle(ctx context.Context, slug string) (*Page, error) {
	return m.container.Service().ComposeArticle(ctx, slug)
}

// ComposeListing renders page pageToken of a feed. Invalid tokens read as 1.
func (m *Module) ComposeListing(ctx context.Context, dimension Dimension, pageToken string) (*Listing, error) {
	return m.container.Service().ComposeListing(ctx, dimension, pageToken)
}

// ImportDirectory loads markdown articles from dir.
func (m *Module) ImportDirectory(ctx context.Context, dir string) (*ImportResult, error) {
	return m.container.Importer().ImportDirectory(ctx, dir)
}

// ImportFeed loads articles from an RSS or Atom URL or file.
func (m *Module) ImportFeed(ctx context.Context, source string, opts FeedOptions) (*ImportResult, error) {
	return m.container.Importer().ImportFeed(ctx, source, opts)
}

// ImportLayout validates and stores a JSON layout document.
func (m *Module) ImportLayout(ctx context.Context, document []byte) error {
	_, err := m.container.Importer().ImportLayout(ctx, document)
	return err
}

// Commands returns the ingest command handlers.
func (m *Module) Commands() *IngestCommands {
	return m.container.IngestCommands()
}

// RegisterRoutes mounts the JSON delivery routes on r, rate limited per the
// server config.
func RegisterRoutes[T any](m *Module, r router.Router[T]) error {
	cfg := m.container.Config
	handlers, err := deliveryhttp.NewHandlers(m.container.Service(),
		deliveryhttp.WithHomeKey(cfg.Layouts.HomeKey),
		deliveryhttp.WithRateLimit(cfg.Server.RateLimit, cfg.Server.Burst),
		deliveryhttp.WithLogger(logging.HTTPLogger(m.container.LoggerProvider())),
	)
	if err != nil {
		return err
	}
	deliveryhttp.Register(r, handlers)
	return nil
}

// Close releases resources the module opened.
func (m *Module) Close() error {
	if m == nil {
		return nil
	}
	return m.container.Close()
}
