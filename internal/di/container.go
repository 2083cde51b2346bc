package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	ingestcmd "github.com/goliatone/go-delivery/internal/commands/ingest"
	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/delivery"
	"github.com/goliatone/go-delivery/internal/ingest"
	"github.com/goliatone/go-delivery/internal/layouts"
	"github.com/goliatone/go-delivery/internal/links"
	"github.com/goliatone/go-delivery/internal/logging"
	"github.com/goliatone/go-delivery/internal/logging/console"
	"github.com/goliatone/go-delivery/internal/logging/gologger"
	"github.com/goliatone/go-delivery/internal/markdown"
	"github.com/goliatone/go-delivery/internal/pagecontext"
	"github.com/goliatone/go-delivery/internal/pagination"
	"github.com/goliatone/go-delivery/internal/runtimeconfig"
	"github.com/goliatone/go-delivery/internal/widgets"
	"github.com/goliatone/go-delivery/pkg/interfaces"
)

// Container wires the delivery runtime from configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	store    content.Store
	links    *links.Resolver
	markdown interfaces.MarkdownParser
	registry *widgets.Registry
	extra    map[string]widgets.Registration

	service         *delivery.Service
	importer        *ingest.Importer
	commands        *ingestcmd.HandlerSet
	commandRegistry ingestcmd.CommandRegistry
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an open database; the container creates the schema but
// does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithStore overrides storage entirely, bypassing Config.Storage.
func WithStore(store content.Store) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithCache overrides the repository cache used by SQL storage.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCommandRegistry registers the ingest handlers with a host dispatcher.
func WithCommandRegistry(registry ingestcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = registry
	}
}

// WithMarkdownParser overrides the goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.markdown = parser
	}
}

// WithWidget registers an additional renderer, replacing a built-in one when
// the keys match.
func WithWidget(key string, registration widgets.Registration) Option {
	return func(c *Container) {
		if c.extra == nil {
			c.extra = map[string]widgets.Registration{}
		}
		c.extra[key] = registration
	}
}

// NewContainer validates cfg and builds every delivery component.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureCacheDefaults(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(context.Background()); err != nil {
		return nil, err
	}
	if err := c.configureDelivery(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	switch runtimeconfig.NormalizeProvider(c.Config.Logging.Provider) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(c.Config.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureCacheDefaults() error {
	if !c.Config.Cache.Enabled {
		return nil
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if ttl := c.Config.Cache.DefaultTTL; ttl > 0 {
			cfg.TTL = ttl
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			return fmt.Errorf("di: repository cache: %w", err)
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return nil
}

func (c *Container) configureStorage(ctx context.Context) error {
	if c.store != nil {
		return nil
	}
	provider := runtimeconfig.NormalizeProvider(c.Config.Storage.Provider)
	if c.bunDB == nil {
		if provider == "memory" {
			c.store = content.NewMemoryStore()
			return nil
		}
		db, err := openBunDB(provider, c.Config.Storage.DSN)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}
	if err := content.CreateSchema(ctx, c.bunDB); err != nil {
		c.Close()
		return fmt.Errorf("di: create schema: %w", err)
	}
	c.store = content.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
	logging.RepositoryLogger(c.loggerProvider).Info("repository.configured",
		"provider", provider,
		"cache", c.cacheService != nil,
	)
	return nil
}

func openBunDB(provider, dsn string) (*bun.DB, error) {
	dsn = strings.TrimSpace(dsn)
	switch provider {
	case "sqlite":
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: open sqlite: %w", err)
		}
		// sqlite memory databases are per connection
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres":
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageProviderUnknown, provider)
	}
}

func (c *Container) configureDelivery() error {
	cfg := c.Config
	provider := c.loggerProvider

	c.links = links.NewResolver(cfg.Links, cfg.Layouts.HomeKey)
	markdownOptions := interfaces.ParseOptions{
		Extensions: cfg.Markdown.Extensions,
		HardWraps:  cfg.Markdown.HardWraps,
	}
	if c.markdown == nil {
		c.markdown = markdown.NewGoldmarkParser(markdownOptions)
	}

	c.registry = widgets.NewRegistry()
	if err := widgets.RegisterBuiltins(c.registry, widgets.Dependencies{
		Links:           c.links,
		Markdown:        c.markdown,
		MarkdownOptions: markdownOptions,
		FeedPageSize:    cfg.Pagination.PageSize(runtimeconfig.DimensionChronological),
	}); err != nil {
		return err
	}
	for key, registration := range c.extra {
		if err := c.registry.Register(key, registration); err != nil {
			return fmt.Errorf("di: register widget %q: %w", key, err)
		}
	}

	service, err := delivery.NewService(delivery.Dependencies{
		Layouts: layouts.NewResolver(c.store,
			layouts.WithHomeKey(cfg.Layouts.HomeKey),
			layouts.WithLogger(logging.LayoutsLogger(provider)),
		),
		Contexts: pagecontext.NewProvider(c.store,
			pagecontext.WithLogger(logging.ContextLogger(provider)),
		),
		Engine: widgets.NewEngine(c.registry,
			widgets.WithLogger(logging.CompositionLogger(provider)),
		),
		Pagination: pagination.NewAdapter(cfg.Pagination,
			pagination.WithLogger(logging.PaginationLogger(provider)),
		),
		Links:  c.links,
		Logger: logging.CompositionLogger(provider),
	})
	if err != nil {
		return err
	}
	c.service = service

	importer, err := ingest.NewImporter(c.store, ingest.WithLogger(logging.CommandsLogger(provider)))
	if err != nil {
		return err
	}
	c.importer = importer

	handlers, err := ingestcmd.RegisterIngestCommands(c.commandRegistry, importer, provider)
	if err != nil {
		return err
	}
	c.commands = handlers
	return nil
}

// Service returns the page composition service.
func (c *Container) Service() *delivery.Service {
	return c.service
}

// Store exposes the configured content store.
func (c *Container) Store() content.Store {
	return c.store
}

// Importer returns the ingest importer bound to the store.
func (c *Container) Importer() *ingest.Importer {
	return c.importer
}

// IngestCommands returns the ingest command handlers.
func (c *Container) IngestCommands() *ingestcmd.HandlerSet {
	return c.commands
}

// Links exposes the permalink resolver.
func (c *Container) Links() *links.Resolver {
	return c.links
}

// Registry exposes the widget registry.
func (c *Container) Registry() *widgets.Registry {
	return c.registry
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	if err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}
