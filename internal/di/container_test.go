package di

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/delivery"
	"github.com/goliatone/go-delivery/internal/logging/gologger"
	"github.com/goliatone/go-delivery/internal/pagination"
	"github.com/goliatone/go-delivery/internal/runtimeconfig"
	"github.com/goliatone/go-delivery/internal/widgets"
	"github.com/goliatone/go-delivery/pkg/testsupport"
)

func sqliteConfig(t *testing.T) runtimeconfig.Config {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "sqlite"
	cfg.Storage.DSN = fmt.Sprintf("file:di_%d?mode=memory&cache=shared", time.Now().UnixNano())
	return cfg
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "sqlite"
	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestNewContainerDefaultsToMemory(t *testing.T) {
	container, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if _, ok := container.Store().(*content.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", container.Store())
	}
	page, err := container.Service().ComposePage(context.Background(), "home")
	if err != nil {
		t.Fatalf("compose home: %v", err)
	}
	if !page.UsesDefault || len(page.Widgets) != 4 {
		t.Fatalf("expected default home, got %+v", page)
	}
	if container.Close() != nil {
		t.Fatalf("expected close to be a no-op for memory storage")
	}
}

func TestNewContainerSQLiteRoundTrip(t *testing.T) {
	container, err := NewContainer(sqliteConfig(t))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })
	if _, ok := container.Store().(*content.BunStore); !ok {
		t.Fatalf("expected bun store, got %T", container.Store())
	}

	ctx := context.Background()
	if _, err := container.Importer().ImportDirectory(ctx, "../ingest/testdata/articles"); err != nil {
		t.Fatalf("import: %v", err)
	}
	listing, err := container.Service().ComposeListing(ctx, pagination.Tag("go"), "1")
	if err != nil {
		t.Fatalf("compose listing: %v", err)
	}
	if len(listing.Items) != 2 || listing.Items[0].Slug != "scaling-the-feed" {
		t.Fatalf("unexpected listing %+v", listing.Items)
	}
	if listing.Items[0].URL != "http://localhost:8080/articles/scaling-the-feed" {
		t.Fatalf("unexpected permalink %q", listing.Items[0].URL)
	}
}

func TestNewContainerWithCacheAndSharedDB(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "sqlite"
	cfg.Storage.DSN = "unused"
	cfg.Cache.Enabled = true
	cfg.Cache.DefaultTTL = 5 * time.Second

	db := testsupport.NewBunDB(t)
	container, err := NewContainer(cfg, WithBunDB(db))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.cacheService == nil || container.keySerializer == nil {
		t.Fatalf("expected cache to be configured")
	}
	if err := container.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("expected caller owned db to stay open: %v", err)
	}
}

func TestNewContainerSelectsGoLogger(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if _, ok := container.LoggerProvider().(*gologger.Provider); !ok {
		t.Fatalf("expected go-logger provider, got %T", container.LoggerProvider())
	}
}

func TestNewContainerRegistersExtraWidgets(t *testing.T) {
	store := content.NewMemoryStore()
	ctx := context.Background()
	if _, err := store.SaveLayout(ctx, &content.Layout{
		PageKey:  "promo",
		IsActive: true,
		Widgets:  []content.WidgetNode{{Type: "banner"}, {Type: widgets.TypeNewsletter}},
	}); err != nil {
		t.Fatalf("save layout: %v", err)
	}
	banner := widgets.RendererFunc(func(context.Context, widgets.Props) (any, error) {
		return "banner", nil
	})
	container, err := NewContainer(runtimeconfig.DefaultConfig(),
		WithStore(store),
		WithWidget("banner", widgets.Registration{Renderer: banner}),
	)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	page, err := container.Service().ComposePage(ctx, "promo")
	if err != nil {
		t.Fatalf("compose promo: %v", err)
	}
	if len(page.Widgets) != 2 || page.Widgets[0].Data != "banner" {
		t.Fatalf("expected custom widget rendered first, got %+v", page.Widgets)
	}
	if _, err := container.Service().ComposePage(ctx, "missing"); !delivery.IsPageUnavailable(err) {
		t.Fatalf("expected unavailable page, got %v", err)
	}
}
