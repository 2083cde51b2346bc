package pagecontext_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/pagecontext"
	"github.com/goliatone/go-delivery/internal/pagination"
	"github.com/goliatone/go-delivery/widgets"
)

var errUnavailable = errors.New("repository unavailable")

// faultyRepository wraps a memory store and fails selected reads.
type faultyRepository struct {
	*content.MemoryStore
	failFeed       bool
	failStaffPicks bool
	failCategories bool
	failCategory   bool
	delay          time.Duration
	inFlight       atomic.Int32
	maxInFlight    atomic.Int32
}

func (f *faultyRepository) track() func() {
	current := f.inFlight.Add(1)
	for {
		seen := f.maxInFlight.Load()
		if current <= seen || f.maxInFlight.CompareAndSwap(seen, current) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return func() { f.inFlight.Add(-1) }
}

func (f *faultyRepository) GetFeed(ctx context.Context, offset, limit int) ([]*content.Article, error) {
	defer f.track()()
	if f.failFeed {
		return nil, errUnavailable
	}
	return f.MemoryStore.GetFeed(ctx, offset, limit)
}

func (f *faultyRepository) GetStaffPicks(ctx context.Context) ([]*content.Article, error) {
	defer f.track()()
	if f.failStaffPicks {
		return nil, errUnavailable
	}
	return f.MemoryStore.GetStaffPicks(ctx)
}

func (f *faultyRepository) GetCategories(ctx context.Context) ([]*content.Category, error) {
	defer f.track()()
	if f.failCategories {
		return nil, errUnavailable
	}
	return f.MemoryStore.GetCategories(ctx)
}

func (f *faultyRepository) GetCategory(ctx context.Context, slug string) (*content.Category, error) {
	if f.failCategory {
		return nil, errUnavailable
	}
	return f.MemoryStore.GetCategory(ctx, slug)
}

func newRepository(t *testing.T) *faultyRepository {
	t.Helper()
	ctx := context.Background()
	store := content.NewMemoryStore()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, slug := range []string{"first", "second", "third"} {
		_, err := store.SaveArticle(ctx, &content.Article{
			Slug:         slug,
			Title:        slug,
			CategorySlug: "engineering",
			Tags:         []string{"go"},
			StaffPick:    i == 0,
			PublishedAt:  base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("seed article: %v", err)
		}
	}
	if _, err := store.SaveCategory(ctx, &content.Category{Slug: "engineering", Name: "Engineering"}); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	if _, err := store.SaveCategory(ctx, &content.Category{Slug: "empty", Name: "Empty"}); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return &faultyRepository{MemoryStore: store}
}

func TestBuildHomeReadsManifestConcurrently(t *testing.T) {
	repo := newRepository(t)
	repo.delay = 20 * time.Millisecond
	provider := pagecontext.NewProvider(repo)

	built, err := provider.Build(context.Background(), pagecontext.Request{Kind: pagecontext.KindHome})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if got := len(built.Feed()); got != 3 {
		t.Fatalf("expected 3 feed articles, got %d", got)
	}
	if got := len(built.StaffPicks()); got != 1 {
		t.Fatalf("expected 1 staff pick, got %d", got)
	}
	if got := len(built.Categories()); got != 2 {
		t.Fatalf("expected 2 categories, got %d", got)
	}
	if built.LeadArticle().Slug != "third" {
		t.Fatalf("expected newest article as lead, got %q", built.LeadArticle().Slug)
	}
	if repo.maxInFlight.Load() < 2 {
		t.Fatalf("expected reads to overlap, max in flight %d", repo.maxInFlight.Load())
	}
}

func TestBuildDegradesSecondaryFailures(t *testing.T) {
	repo := newRepository(t)
	repo.failStaffPicks = true
	repo.failCategories = true
	provider := pagecontext.NewProvider(repo)

	built, err := provider.Build(context.Background(), pagecontext.Request{Kind: pagecontext.KindHome})
	if err != nil {
		t.Fatalf("expected degraded build to succeed, got %v", err)
	}
	if picks := built.StaffPicks(); picks == nil || len(picks) != 0 {
		t.Fatalf("expected empty staff picks, got %#v", picks)
	}
	if len(built.Feed()) != 3 {
		t.Fatalf("expected feed to survive, got %d", len(built.Feed()))
	}
	degraded := built.Degraded()
	if len(degraded) != 2 || degraded[0] != widgets.SliceStaffPicks || degraded[1] != widgets.SliceCategories {
		t.Fatalf("unexpected degraded slices %v", degraded)
	}
}

func TestBuildCategoryRequiresPrimaryEntity(t *testing.T) {
	repo := newRepository(t)
	provider := pagecontext.NewProvider(repo)

	_, err := provider.Build(context.Background(), pagecontext.Request{Kind: pagecontext.KindCategory, Scope: "missing"})
	if !errors.Is(err, pagecontext.ErrPrimaryNotFound) {
		t.Fatalf("expected ErrPrimaryNotFound, got %v", err)
	}
	if !content.IsNotFound(err) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}

	repo.failCategory = true
	_, err = provider.Build(context.Background(), pagecontext.Request{Kind: pagecontext.KindCategory, Scope: "engineering"})
	if !errors.Is(err, pagecontext.ErrPrimaryNotFound) || !errors.Is(err, errUnavailable) {
		t.Fatalf("expected repository failure on primary to be not found, got %v", err)
	}
}

func TestBuildCategoryUsesWindow(t *testing.T) {
	repo := newRepository(t)
	provider := pagecontext.NewProvider(repo)
	window := pagination.FetchSpec{Page: 1, PageSize: 2, Limit: 2}

	built, err := provider.Build(context.Background(), pagecontext.Request{
		Kind:   pagecontext.KindCategory,
		Scope:  "engineering",
		Window: window,
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if built.Category().Name != "Engineering" {
		t.Fatalf("expected category entity, got %+v", built.Category())
	}
	if got := len(built.Scoped()); got != 2 {
		t.Fatalf("expected windowed scoped feed of 2, got %d", got)
	}

	empty, err := provider.Build(context.Background(), pagecontext.Request{Kind: pagecontext.KindCategory, Scope: "empty"})
	if err != nil {
		t.Fatalf("Build returned error for empty category: %v", err)
	}
	if len(empty.Scoped()) != 0 {
		t.Fatalf("expected empty scoped feed, got %d", len(empty.Scoped()))
	}
}

func TestBuildRejectsUnknownKindAndMissingScope(t *testing.T) {
	provider := pagecontext.NewProvider(newRepository(t))

	if _, err := provider.Build(context.Background(), pagecontext.Request{Kind: "sidebar"}); !errors.Is(err, pagecontext.ErrKindUnknown) {
		t.Fatalf("expected ErrKindUnknown, got %v", err)
	}
	if _, err := provider.Build(context.Background(), pagecontext.Request{Kind: pagecontext.KindTag}); !errors.Is(err, pagecontext.ErrScopeRequired) {
		t.Fatalf("expected ErrScopeRequired, got %v", err)
	}
}

func TestContextAccessorsReturnCopies(t *testing.T) {
	provider := pagecontext.NewProvider(newRepository(t))
	built, err := provider.Build(context.Background(), pagecontext.Request{Kind: pagecontext.KindHome})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	feed := built.Feed()
	feed[0].Title = "mutated"
	feed = append(feed[:0], feed[1:]...)

	again := built.Feed()
	if len(again) != 3 || again[0].Title == "mutated" {
		t.Fatalf("expected context to be immutable, got %+v", again[0])
	}

	raw, ok := built.Slice(widgets.SliceFeed)
	if !ok {
		t.Fatal("expected feed slice to exist")
	}
	if _, ok := raw.([]*content.Article); !ok {
		t.Fatalf("expected article slice, got %T", raw)
	}
	if _, ok := built.Slice(widgets.SliceArticle); ok {
		t.Fatal("expected absent article slice on home page")
	}
}

func TestManifestIsCopied(t *testing.T) {
	manifest := pagecontext.Manifest(pagecontext.KindHome)
	manifest[0] = "mutated"
	if pagecontext.Manifest(pagecontext.KindHome)[0] != widgets.SliceFeed {
		t.Fatal("expected manifest copy")
	}
}

func TestBuildRejectsInvalidWindow(t *testing.T) {
	provider := pagecontext.NewProvider(newRepository(t))

	for _, window := range []pagination.FetchSpec{
		{Page: 1, PageSize: 10, Limit: -5},
		{Page: 2, PageSize: 10, Offset: -1, Limit: 20},
	} {
		_, err := provider.Build(context.Background(), pagecontext.Request{Kind: pagecontext.KindChronological, Window: window})
		if !errors.Is(err, pagecontext.ErrWindowInvalid) {
			t.Fatalf("expected ErrWindowInvalid for %+v, got %v", window, err)
		}
	}
}

func TestNilContextHasNoSlices(t *testing.T) {
	var missing *pagecontext.Context
	if value, ok := missing.Slice(widgets.SliceFeed); ok || value != nil {
		t.Fatalf("expected nil context to bind nothing, got %v %v", value, ok)
	}
}
