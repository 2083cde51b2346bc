package widgets

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/links"
	"github.com/goliatone/go-delivery/internal/runtimeconfig"
)

func echo(_ context.Context, props Props) (any, error) {
	return props, nil
}

func testDependencies() Dependencies {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Links.BaseURL = "https://news.example.com"
	return Dependencies{Links: links.NewResolver(cfg.Links, cfg.Layouts.HomeKey)}
}

func sampleArticles(n int) []*content.Article {
	out := make([]*content.Article, n)
	for i := range out {
		slug := "story-" + string(rune('a'+i))
		out[i] = &content.Article{
			Slug:         slug,
			Title:        "Story " + strings.ToUpper(slug[len(slug)-1:]),
			CategorySlug: "engineering",
			PublishedAt:  time.Date(2024, 1, 10-i, 0, 0, 0, 0, time.UTC),
		}
	}
	return out
}

func TestHeroFallsBackToLeadArticle(t *testing.T) {
	deps := testDependencies()
	lead := sampleArticles(1)[0]

	data, err := deps.renderHero(context.Background(), Props{"lead": lead})
	if err != nil {
		t.Fatalf("render hero: %v", err)
	}
	view := data.(HeroView)
	if view.Headline != lead.Title {
		t.Fatalf("expected headline from lead, got %q", view.Headline)
	}
	if view.CTAURL != "https://news.example.com/articles/story-a" {
		t.Fatalf("unexpected cta url %q", view.CTAURL)
	}

	if _, err := deps.renderHero(context.Background(), Props{}); !errors.Is(err, ErrPropsInvalid) {
		t.Fatalf("expected ErrPropsInvalid without headline or lead, got %v", err)
	}
}

func TestStaffPicksHonoursLimit(t *testing.T) {
	deps := testDependencies()

	data, err := deps.renderStaffPicks(context.Background(), Props{
		"title":    "Editors' picks",
		"limit":    float64(2),
		"articles": sampleArticles(5),
	})
	if err != nil {
		t.Fatalf("render staff picks: %v", err)
	}
	view := data.(ArticleListView)
	if len(view.Articles) != 2 || view.Articles[0].Slug != "story-a" {
		t.Fatalf("unexpected articles %+v", view.Articles)
	}
	if view.Articles[0].CategoryURL != "https://news.example.com/categories/engineering" {
		t.Fatalf("unexpected category url %q", view.Articles[0].CategoryURL)
	}

	for _, limit := range []any{0, 51, "many", 2.5} {
		if _, err := deps.renderStaffPicks(context.Background(), Props{"limit": limit}); !errors.Is(err, ErrPropsInvalid) {
			t.Fatalf("expected ErrPropsInvalid for limit %v, got %v", limit, err)
		}
	}
}

func TestFeedLinksMoreWhenTruncated(t *testing.T) {
	deps := testDependencies()

	data, err := deps.renderFeed(context.Background(), Props{"limit": json.Number("3"), "articles": sampleArticles(4)})
	if err != nil {
		t.Fatalf("render feed: %v", err)
	}
	view := data.(ArticleListView)
	if len(view.Articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(view.Articles))
	}
	if view.MoreURL != "https://news.example.com/articles?page=2" {
		t.Fatalf("unexpected more url %q", view.MoreURL)
	}

	data, err = deps.renderFeed(context.Background(), Props{"articles": []*content.Article{}})
	if err != nil {
		t.Fatalf("render empty feed: %v", err)
	}
	if view := data.(ArticleListView); len(view.Articles) != 0 || view.MoreURL != "" {
		t.Fatalf("expected empty feed without more link, got %+v", view)
	}
}

func TestFeedLinksPastCoveredListingPage(t *testing.T) {
	deps := testDependencies()
	deps.FeedPageSize = 3

	cases := []struct {
		name     string
		props    Props
		wantLen  int
		wantMore string
	}{
		{name: "full window", props: Props{"articles": sampleArticles(3)}, wantLen: 3, wantMore: "https://news.example.com/articles?page=2"},
		{name: "short window", props: Props{"articles": sampleArticles(2)}, wantLen: 2},
		{name: "limit spans pages", props: Props{"limit": 5, "articles": sampleArticles(6)}, wantLen: 5, wantMore: "https://news.example.com/articles?page=3"},
		{name: "limit within first page", props: Props{"limit": 1, "articles": sampleArticles(3)}, wantLen: 1, wantMore: "https://news.example.com/articles?page=2"},
	}
	for _, tc := range cases {
		data, err := deps.renderFeed(context.Background(), tc.props)
		if err != nil {
			t.Fatalf("%s: render feed: %v", tc.name, err)
		}
		view := data.(ArticleListView)
		if len(view.Articles) != tc.wantLen || view.MoreURL != tc.wantMore {
			t.Fatalf("%s: expected %d articles and more %q, got %d and %q", tc.name, tc.wantLen, tc.wantMore, len(view.Articles), view.MoreURL)
		}
	}
}

func TestFeedRejectsWrongArticleType(t *testing.T) {
	deps := testDependencies()
	if _, err := deps.renderFeed(context.Background(), Props{"articles": "nope"}); !errors.Is(err, ErrPropsInvalid) {
		t.Fatalf("expected ErrPropsInvalid, got %v", err)
	}
}

func TestTopicsAndArchive(t *testing.T) {
	deps := testDependencies()

	data, err := deps.renderTopics(context.Background(), Props{"categories": []*content.Category{
		{Slug: "engineering", Name: "Engineering"},
	}})
	if err != nil {
		t.Fatalf("render topics: %v", err)
	}
	topics := data.(TopicsView).Topics
	if len(topics) != 1 || topics[0].URL != "https://news.example.com/categories/engineering" {
		t.Fatalf("unexpected topics %+v", topics)
	}

	data, err = deps.renderArchive(context.Background(), Props{
		"articles": sampleArticles(2),
		"tag":      &content.Tag{Slug: "go", Name: "Go"},
	})
	if err != nil {
		t.Fatalf("render archive: %v", err)
	}
	archive := data.(ArticleListView)
	if archive.Title != "Go" || archive.Tag == nil || archive.Tag.URL != "https://news.example.com/tags/go" {
		t.Fatalf("unexpected archive %+v", archive)
	}
}

func TestArticleBodySanitizesMarkdown(t *testing.T) {
	deps := testDependencies()
	registry := NewRegistry()
	if err := RegisterBuiltins(registry, deps); err != nil {
		t.Fatalf("register: %v", err)
	}
	registration, _ := registry.Lookup(TypeArticleBody)

	article := &content.Article{Slug: "hello", Title: "Hello", Body: "# Title\n\n<script>alert(1)</script>\n\n**bold**"}
	data, err := registration.Renderer.Render(context.Background(), Props{"article": article})
	if err != nil {
		t.Fatalf("render article body: %v", err)
	}
	view := data.(ArticleBodyView)
	if strings.Contains(view.HTML, "<script>") {
		t.Fatalf("expected script stripped, got %s", view.HTML)
	}
	if !strings.Contains(view.HTML, "<strong>bold</strong>") {
		t.Fatalf("expected markdown rendered, got %s", view.HTML)
	}

	if _, err := registration.Renderer.Render(context.Background(), Props{}); !errors.Is(err, ErrPropsInvalid) {
		t.Fatalf("expected ErrPropsInvalid without article, got %v", err)
	}
}

func TestRichTextSanitizesHTML(t *testing.T) {
	registry := NewRegistry()
	if err := RegisterBuiltins(registry, testDependencies()); err != nil {
		t.Fatalf("register: %v", err)
	}
	registration, _ := registry.Lookup(TypeRichText)

	data, err := registration.Renderer.Render(context.Background(), Props{
		"html": `<p onclick="x()">Hi <a href="https://example.com">there</a></p><script>bad()</script>`,
	})
	if err != nil {
		t.Fatalf("render rich text: %v", err)
	}
	html := data.(RichTextView).HTML
	if strings.Contains(html, "script") || strings.Contains(html, "onclick") {
		t.Fatalf("expected unsafe markup removed, got %s", html)
	}
	if !strings.Contains(html, `rel="nofollow`) {
		t.Fatalf("expected nofollow on links, got %s", html)
	}

	if _, err := registration.Renderer.Render(context.Background(), Props{}); !errors.Is(err, ErrPropsInvalid) {
		t.Fatalf("expected ErrPropsInvalid without html, got %v", err)
	}
}

func TestNewsletterDefaults(t *testing.T) {
	data, err := renderNewsletter(context.Background(), Props{})
	if err != nil {
		t.Fatalf("render newsletter: %v", err)
	}
	view := data.(NewsletterView)
	if view.Title == "" || view.ButtonLabel != "Subscribe" {
		t.Fatalf("unexpected defaults %+v", view)
	}
}
