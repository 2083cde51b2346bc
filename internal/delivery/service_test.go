package delivery_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/delivery"
	"github.com/goliatone/go-delivery/internal/layouts"
	"github.com/goliatone/go-delivery/internal/links"
	"github.com/goliatone/go-delivery/internal/pagecontext"
	"github.com/goliatone/go-delivery/internal/pagination"
	"github.com/goliatone/go-delivery/internal/runtimeconfig"
	"github.com/goliatone/go-delivery/internal/widgets"
	"github.com/goliatone/go-delivery/pkg/testsupport"
)

var errStaffPicksDown = errors.New("staff picks offline")

type degradedRepository struct {
	*content.MemoryStore
}

func (degradedRepository) GetStaffPicks(context.Context) ([]*content.Article, error) {
	return nil, errStaffPicksDown
}

func newService(t *testing.T, repo content.Repository) *delivery.Service {
	t.Helper()
	return newServiceWith(t, repo, nil)
}

func newServiceWith(t *testing.T, repo content.Repository, configure func(*runtimeconfig.Config)) *delivery.Service {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Links.BaseURL = "https://news.example.com"
	cfg.Pagination.PageSizes = map[string]int{runtimeconfig.DimensionTag: 3}
	if configure != nil {
		configure(&cfg)
	}

	resolver := links.NewResolver(cfg.Links, cfg.Layouts.HomeKey)
	registry := widgets.NewRegistry()
	if err := widgets.RegisterBuiltins(registry, widgets.Dependencies{Links: resolver}); err != nil {
		t.Fatalf("register builtins: %v", err)
	}
	service, err := delivery.NewService(delivery.Dependencies{
		Layouts:    layouts.NewResolver(repo, layouts.WithHomeKey(cfg.Layouts.HomeKey)),
		Contexts:   pagecontext.NewProvider(repo),
		Engine:     widgets.NewEngine(registry),
		Pagination: pagination.NewAdapter(cfg.Pagination),
		Links:      resolver,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

// seedNewsroom stores n articles in the news category, every other one
// tagged go, plus an engineering category with no articles.
func seedNewsroom(t *testing.T, n int) *content.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := content.NewMemoryStore()
	for _, category := range []*content.Category{
		{Slug: "news", Name: "News", Position: 1},
		{Slug: "engineering", Name: "Engineering", Position: 2},
	} {
		if _, err := store.SaveCategory(ctx, category); err != nil {
			t.Fatalf("save category: %v", err)
		}
	}
	if _, err := store.SaveTag(ctx, &content.Tag{Slug: "go", Name: "Go"}); err != nil {
		t.Fatalf("save tag: %v", err)
	}
	start := testsupport.Day(2024, time.March, 1)
	for i := range n {
		article := &content.Article{
			Slug:         fmt.Sprintf("story-%02d", i),
			Title:        fmt.Sprintf("Story %d", i),
			Body:         "Body of **story**.",
			CategorySlug: "news",
			StaffPick:    i%5 == 0,
			PublishedAt:  start.Add(time.Duration(i) * time.Hour),
		}
		if i%2 == 0 {
			article.Tags = []string{"go"}
		}
		if _, err := store.SaveArticle(ctx, article); err != nil {
			t.Fatalf("save article: %v", err)
		}
	}
	return store
}

func widgetTypes(page *delivery.Page) []string {
	types := make([]string, len(page.Widgets))
	for i, widget := range page.Widgets {
		types[i] = widget.Type
	}
	return types
}

func TestComposePageHomeFallsBackToDefaultLayout(t *testing.T) {
	t.Parallel()
	service := newService(t, seedNewsroom(t, 3))

	page, err := service.ComposePage(context.Background(), "home")
	if err != nil {
		t.Fatalf("compose home: %v", err)
	}
	if !page.UsesDefault {
		t.Fatalf("expected default layout")
	}
	want := []string{widgets.TypeHero, widgets.TypeStaffPicks, widgets.TypeTopics, widgets.TypeFeed}
	if got := widgetTypes(page); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestComposePageHomeRendersWithEmptyRepository(t *testing.T) {
	t.Parallel()
	service := newService(t, content.NewMemoryStore())

	page, err := service.ComposePage(context.Background(), "home")
	if err != nil {
		t.Fatalf("compose home: %v", err)
	}
	if len(page.Widgets) != 4 {
		t.Fatalf("expected all default widgets to render on empty content, got %v", widgetTypes(page))
	}
}

func TestComposePageInactiveStandaloneIsUnavailable(t *testing.T) {
	t.Parallel()
	store := seedNewsroom(t, 1)
	if _, err := store.SaveLayout(context.Background(), &content.Layout{
		PageKey:  "about",
		IsActive: false,
		Widgets:  []content.WidgetNode{{Type: widgets.TypeNewsletter}},
	}); err != nil {
		t.Fatalf("save layout: %v", err)
	}
	service := newService(t, store)

	for _, key := range []string{"about", "missing-page"} {
		_, err := service.ComposePage(context.Background(), key)
		if !errors.Is(err, delivery.ErrPageUnavailable) {
			t.Fatalf("%s: expected ErrPageUnavailable, got %v", key, err)
		}
		if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
			t.Fatalf("%s: expected not found category, got %v", key, err)
		}
		if !delivery.IsPageUnavailable(err) {
			t.Fatalf("%s: expected IsPageUnavailable", key)
		}
	}
}

func TestComposePageStandaloneRendersInOrder(t *testing.T) {
	t.Parallel()
	store := seedNewsroom(t, 4)
	if _, err := store.SaveLayout(context.Background(), &content.Layout{
		PageKey:  "about",
		Title:    "About us",
		IsActive: true,
		Widgets: []content.WidgetNode{
			{Type: widgets.TypeRichText, Props: map[string]any{"html": "<p>We write things.</p>"}},
			{Type: "carousel"},
			{Type: widgets.TypeNewsletter},
			{Type: widgets.TypeFeed, Props: map[string]any{"limit": 2}},
		},
	}); err != nil {
		t.Fatalf("save layout: %v", err)
	}
	service := newService(t, store)

	page, err := service.ComposePage(context.Background(), "About")
	if err != nil {
		t.Fatalf("compose about: %v", err)
	}
	want := []string{widgets.TypeRichText, widgets.TypeNewsletter, widgets.TypeFeed}
	if got := widgetTypes(page); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if page.Title != "About us" || page.UsesDefault {
		t.Fatalf("unexpected page metadata %+v", page)
	}
	feed := page.Widgets[2].Data.(widgets.ArticleListView)
	if len(feed.Articles) != 2 || feed.Articles[0].Slug != "story-03" {
		t.Fatalf("expected newest two articles, got %+v", feed.Articles)
	}
}

func TestComposePageDegradedSliceStillRenders(t *testing.T) {
	t.Parallel()
	service := newService(t, degradedRepository{MemoryStore: seedNewsroom(t, 3)})

	page, err := service.ComposePage(context.Background(), "home")
	if err != nil {
		t.Fatalf("expected degraded render to succeed, got %v", err)
	}
	want := []string{widgets.TypeHero, widgets.TypeStaffPicks, widgets.TypeTopics, widgets.TypeFeed}
	if got := widgetTypes(page); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !reflect.DeepEqual(page.Degraded, []string{string(widgets.SliceStaffPicks)}) {
		t.Fatalf("expected staff picks degraded, got %v", page.Degraded)
	}
	picks := page.Widgets[1].Data.(widgets.ArticleListView)
	if len(picks.Articles) != 0 {
		t.Fatalf("expected empty staff picks, got %d", len(picks.Articles))
	}
}

func TestComposeListingEmptyCategory(t *testing.T) {
	t.Parallel()
	service := newService(t, seedNewsroom(t, 5))

	listing, err := service.ComposeListing(context.Background(), pagination.Category("engineering"), "1")
	if err != nil {
		t.Fatalf("compose listing: %v", err)
	}
	if len(listing.Items) != 0 || listing.HasMore {
		t.Fatalf("expected {[], false}, got %d items has_more=%v", len(listing.Items), listing.HasMore)
	}
	if listing.Category == nil || listing.Category.Name != "Engineering" {
		t.Fatalf("expected category link, got %+v", listing.Category)
	}
}

func TestComposeListingUnknownScopeIsUnavailable(t *testing.T) {
	t.Parallel()
	service := newService(t, seedNewsroom(t, 2))

	cases := []pagination.Dimension{
		pagination.Category("sports"),
		pagination.Tag("rust"),
		{Kind: "season"},
		{Kind: pagination.KindCategory},
	}
	for _, dimension := range cases {
		if _, err := service.ComposeListing(context.Background(), dimension, "1"); !errors.Is(err, delivery.ErrPageUnavailable) {
			t.Fatalf("%s: expected ErrPageUnavailable, got %v", dimension, err)
		}
	}
}

func TestComposeListingCumulativePages(t *testing.T) {
	t.Parallel()
	service := newService(t, seedNewsroom(t, 25))

	var previous []widgets.ArticleCard
	for page := 1; page <= 3; page++ {
		listing, err := service.ComposeListing(context.Background(), pagination.Chronological(), fmt.Sprint(page))
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if want := min(page*10, 25); len(listing.Items) != want {
			t.Fatalf("page %d: expected %d items, got %d", page, want, len(listing.Items))
		}
		for i, card := range previous {
			if listing.Items[i].Slug != card.Slug {
				t.Fatalf("page %d: expected prefix of page %d at %d", page, page-1, i)
			}
		}
		if wantMore := page < 3; listing.HasMore != wantMore {
			t.Fatalf("page %d: expected has_more=%v", page, wantMore)
		}
		previous = listing.Items
	}
}

func TestComposeListingHasMoreAndNextURL(t *testing.T) {
	t.Parallel()
	service := newService(t, seedNewsroom(t, 6))

	listing, err := service.ComposeListing(context.Background(), pagination.Tag("go"), "")
	if err != nil {
		t.Fatalf("compose tag listing: %v", err)
	}
	if listing.Page != 1 || listing.PageSize != 3 || len(listing.Items) != 3 {
		t.Fatalf("unexpected first page %+v", listing)
	}
	if !listing.HasMore || listing.NextURL != "https://news.example.com/tags/go?page=2" {
		t.Fatalf("expected next link, got has_more=%v next=%q", listing.HasMore, listing.NextURL)
	}

	listing, err = service.ComposeListing(context.Background(), pagination.Tag("GO"), "-4")
	if err != nil {
		t.Fatalf("compose tag listing with bad token: %v", err)
	}
	if listing.Page != 1 {
		t.Fatalf("expected invalid token to map to page 1, got %d", listing.Page)
	}

	listing, err = service.ComposeListing(context.Background(), pagination.Tag("go"), "2")
	if err != nil {
		t.Fatalf("compose tag page 2: %v", err)
	}
	if len(listing.Items) != 3 || listing.HasMore || listing.NextURL != "" {
		t.Fatalf("expected short window without more, got %d %v %q", len(listing.Items), listing.HasMore, listing.NextURL)
	}
}

func TestComposeListingDeepPageTokenStaysMonotonic(t *testing.T) {
	t.Parallel()
	service := newService(t, seedNewsroom(t, 25))

	third, err := service.ComposeListing(context.Background(), pagination.Chronological(), "3")
	if err != nil {
		t.Fatalf("compose page 3: %v", err)
	}
	for _, token := range []string{"922337203685477581", "9223372036854775807", "99999999999999999999"} {
		deep, err := service.ComposeListing(context.Background(), pagination.Chronological(), token)
		if err != nil {
			t.Fatalf("token %s: %v", token, err)
		}
		if len(deep.Items) < len(third.Items) {
			t.Fatalf("token %s: expected at least %d items, got %d", token, len(third.Items), len(deep.Items))
		}
		for i, card := range third.Items {
			if deep.Items[i].Slug != card.Slug {
				t.Fatalf("token %s: expected page 3 prefix at %d", token, i)
			}
		}
		if deep.HasMore || deep.NextURL != "" {
			t.Fatalf("token %s: expected no further page, got has_more=%v next=%q", token, deep.HasMore, deep.NextURL)
		}
	}
}

func TestComposeListingStopsAtMaxPage(t *testing.T) {
	t.Parallel()
	service := newServiceWith(t, seedNewsroom(t, 25), func(cfg *runtimeconfig.Config) {
		cfg.Pagination.MaxPage = 2
	})

	first, err := service.ComposeListing(context.Background(), pagination.Chronological(), "1")
	if err != nil {
		t.Fatalf("compose page 1: %v", err)
	}
	if !first.HasMore || first.NextURL != "https://news.example.com/articles?page=2" {
		t.Fatalf("expected link to page 2, got has_more=%v next=%q", first.HasMore, first.NextURL)
	}
	for _, token := range []string{"2", "3", "4"} {
		listing, err := service.ComposeListing(context.Background(), pagination.Chronological(), token)
		if err != nil {
			t.Fatalf("token %s: %v", token, err)
		}
		if listing.Page != 2 || len(listing.Items) != 20 {
			t.Fatalf("token %s: expected clamped page 2 with 20 items, got page %d with %d", token, listing.Page, len(listing.Items))
		}
		if listing.HasMore || listing.NextURL != "" {
			t.Fatalf("token %s: expected last page without next link, got has_more=%v next=%q", token, listing.HasMore, listing.NextURL)
		}
	}
}

func TestComposePageNormalizesConfiguredHomeKey(t *testing.T) {
	t.Parallel()
	service := newServiceWith(t, seedNewsroom(t, 3), func(cfg *runtimeconfig.Config) {
		cfg.Layouts.HomeKey = "Front Page"
	})

	for _, key := range []string{"front-page", "Front Page"} {
		page, err := service.ComposePage(context.Background(), key)
		if err != nil {
			t.Fatalf("compose %q: %v", key, err)
		}
		if !page.UsesDefault || len(page.Widgets) != 4 {
			t.Fatalf("compose %q: expected default home layout, got %v", key, widgetTypes(page))
		}
	}
	if _, err := service.ComposePage(context.Background(), "home"); !errors.Is(err, delivery.ErrPageUnavailable) {
		t.Fatalf("expected plain home key to be a standalone page, got %v", err)
	}
}

func TestComposeArticle(t *testing.T) {
	t.Parallel()
	service := newService(t, seedNewsroom(t, 3))

	page, err := service.ComposeArticle(context.Background(), "story-01")
	if err != nil {
		t.Fatalf("compose article: %v", err)
	}
	if page.Title != "Story 1" {
		t.Fatalf("unexpected title %q", page.Title)
	}
	want := []string{widgets.TypeArticleBody, widgets.TypeStaffPicks, widgets.TypeTopics}
	if got := widgetTypes(page); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := service.ComposeArticle(context.Background(), "nope"); !errors.Is(err, delivery.ErrPageUnavailable) {
		t.Fatalf("expected ErrPageUnavailable, got %v", err)
	}
}
