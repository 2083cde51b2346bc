package widgets

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-delivery/internal/links"
	"github.com/goliatone/go-delivery/internal/markdown"
	"github.com/goliatone/go-delivery/internal/pagination"
	"github.com/goliatone/go-delivery/internal/runtimeconfig"
	"github.com/goliatone/go-delivery/pkg/interfaces"
)

// Built-in widget type keys.
const (
	TypeHero        = "hero"
	TypeStaffPicks  = "staff-picks"
	TypeTopics      = "topics"
	TypeFeed        = "feed"
	TypeArchive     = "archive"
	TypeArticleBody = "article-body"
	TypeRichText    = "rich-text"
	TypeNewsletter  = "newsletter"
)

const (
	defaultStaffPicksLimit = 4
	defaultFeedLimit       = 10
	maxListLimit           = 50
)

// Dependencies carries the collaborators the built-in renderers need. Nil
// fields fall back to defaults.
type Dependencies struct {
	Links           *links.Resolver
	Markdown        interfaces.MarkdownParser
	MarkdownOptions interfaces.ParseOptions
	Sanitizer       *markdown.Sanitizer
	// FeedPageSize is the chronological listing page size the feed widget
	// links into. Zero means runtimeconfig.DefaultPageSize.
	FeedPageSize int
}

// RegisterBuiltins installs the stock widget set into registry.
func RegisterBuiltins(registry *Registry, deps Dependencies) error {
	if registry == nil {
		return fmt.Errorf("widgets: registry is nil")
	}
	if deps.Markdown == nil {
		deps.Markdown = markdown.NewGoldmarkParser(deps.MarkdownOptions)
	}
	if deps.Sanitizer == nil {
		deps.Sanitizer = markdown.NewSanitizer()
	}

	builtins := []struct {
		key      string
		render   RendererFunc
		bindings map[string]Slice
	}{
		{TypeHero, deps.renderHero, map[string]Slice{"lead": SliceLeadArticle}},
		{TypeStaffPicks, deps.renderStaffPicks, map[string]Slice{"articles": SliceStaffPicks}},
		{TypeTopics, deps.renderTopics, map[string]Slice{"categories": SliceCategories}},
		{TypeFeed, deps.renderFeed, map[string]Slice{"articles": SliceFeed}},
		{TypeArchive, deps.renderArchive, map[string]Slice{
			"articles": SliceScoped,
			"category": SliceCategory,
			"tag":      SliceTag,
		}},
		{TypeArticleBody, deps.renderArticleBody, map[string]Slice{"article": SliceArticle}},
		{TypeRichText, deps.renderRichText, nil},
		{TypeNewsletter, renderNewsletter, nil},
	}
	for _, builtin := range builtins {
		if err := registry.RegisterFunc(builtin.key, builtin.render, builtin.bindings); err != nil {
			return fmt.Errorf("widgets: register %s: %w", builtin.key, err)
		}
	}
	return nil
}

// HeroView is the payload of the hero widget.
type HeroView struct {
	Headline    string       `json:"headline"`
	Subheadline string       `json:"subheadline,omitempty"`
	CTALabel    string       `json:"cta_label,omitempty"`
	CTAURL      string       `json:"cta_url,omitempty"`
	Lead        *ArticleCard `json:"lead,omitempty"`
}

func (d Dependencies) renderHero(_ context.Context, props Props) (any, error) {
	headline, errHeadline := stringProp(props, "headline")
	subheadline, errSub := stringProp(props, "subheadline")
	ctaLabel, errLabel := stringProp(props, "cta_label")
	ctaURL, errURL := stringProp(props, "cta_url")
	lead, errLead := articleProp(props, "lead")
	if err := firstErr(errHeadline, errSub, errLabel, errURL, errLead); err != nil {
		return nil, err
	}

	view := HeroView{Headline: headline, Subheadline: subheadline, CTALabel: ctaLabel, CTAURL: ctaURL}
	if lead != nil {
		card := articleCard(lead, d.Links)
		view.Lead = &card
		if view.Headline == "" {
			view.Headline = lead.Title
		}
		if view.CTAURL == "" {
			view.CTAURL = card.URL
		}
	}
	if err := validation.ValidateStruct(&view,
		validation.Field(&view.Headline, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPropsInvalid, err)
	}
	return view, nil
}

// ArticleListView is the payload of staff-picks, feed and archive widgets.
type ArticleListView struct {
	Title    string        `json:"title,omitempty"`
	Articles []ArticleCard `json:"articles"`
	MoreURL  string        `json:"more_url,omitempty"`
	Category *TopicLink    `json:"category,omitempty"`
	Tag      *TopicLink    `json:"tag,omitempty"`
}

func (d Dependencies) renderStaffPicks(_ context.Context, props Props) (any, error) {
	view, limit, err := d.articleList(props, defaultStaffPicksLimit)
	if err != nil {
		return nil, err
	}
	view.Articles = view.Articles[:min(limit, len(view.Articles))]
	return view, nil
}

func (d Dependencies) renderFeed(_ context.Context, props Props) (any, error) {
	view, limit, err := d.articleList(props, defaultFeedLimit)
	if err != nil {
		return nil, err
	}
	pageSize := d.feedPageSize()
	shown := min(limit, len(view.Articles))
	more := len(view.Articles) > shown || (shown > 0 && len(view.Articles) >= pageSize)
	view.Articles = view.Articles[:shown]
	if more {
		// First cumulative page past the shown articles.
		covered := max((shown+pageSize-1)/pageSize, 1)
		view.MoreURL = d.Links.Listing(pagination.Chronological(), covered+1)
	}
	return view, nil
}

func (d Dependencies) feedPageSize() int {
	if d.FeedPageSize > 0 {
		return d.FeedPageSize
	}
	return runtimeconfig.DefaultPageSize
}

func (d Dependencies) articleList(props Props, defaultLimit int) (ArticleListView, int, error) {
	title, errTitle := stringProp(props, "title")
	limit, errLimit := intProp(props, "limit", defaultLimit)
	articles, errArticles := articlesProp(props, "articles")
	if err := firstErr(errTitle, errLimit, errArticles); err != nil {
		return ArticleListView{}, 0, err
	}
	if err := validation.Validate(limit, validation.Required, validation.Min(1), validation.Max(maxListLimit)); err != nil {
		return ArticleListView{}, 0, fmt.Errorf("%w: limit %v", ErrPropsInvalid, err)
	}
	return ArticleListView{Title: title, Articles: ArticleCards(articles, d.Links)}, limit, nil
}

// TopicsView is the payload of the topics widget.
type TopicsView struct {
	Title  string      `json:"title,omitempty"`
	Topics []TopicLink `json:"topics"`
}

func (d Dependencies) renderTopics(_ context.Context, props Props) (any, error) {
	title, errTitle := stringProp(props, "title")
	categories, errCategories := categoriesProp(props, "categories")
	if err := firstErr(errTitle, errCategories); err != nil {
		return nil, err
	}
	return TopicsView{Title: title, Topics: topicLinks(categories, d.Links)}, nil
}

func (d Dependencies) renderArchive(_ context.Context, props Props) (any, error) {
	title, errTitle := stringProp(props, "title")
	articles, errArticles := articlesProp(props, "articles")
	category, errCategory := categoryProp(props, "category")
	tag, errTag := tagProp(props, "tag")
	if err := firstErr(errTitle, errArticles, errCategory, errTag); err != nil {
		return nil, err
	}

	view := ArticleListView{Title: title, Articles: ArticleCards(articles, d.Links)}
	if category != nil {
		view.Category = &TopicLink{Slug: category.Slug, Name: category.Name, URL: d.Links.Category(category.Slug)}
		if view.Title == "" {
			view.Title = category.Name
		}
	}
	if tag != nil {
		view.Tag = &TopicLink{Slug: tag.Slug, Name: tag.Name, URL: d.Links.Tag(tag.Slug)}
		if view.Title == "" {
			view.Title = tag.Name
		}
	}
	return view, nil
}

// ArticleBodyView is the payload of the article-body widget.
type ArticleBodyView struct {
	ArticleCard
	HTML string `json:"html"`
}

func (d Dependencies) renderArticleBody(_ context.Context, props Props) (any, error) {
	article, err := articleProp(props, "article")
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("%w: article is required", ErrPropsInvalid)
	}
	opts := d.MarkdownOptions
	opts.Sanitize = true
	html, err := d.Markdown.ParseWithOptions([]byte(article.Body), opts)
	if err != nil {
		return nil, err
	}
	return ArticleBodyView{ArticleCard: articleCard(article, d.Links), HTML: string(html)}, nil
}

// RichTextView is the payload of the rich-text widget.
type RichTextView struct {
	HTML string `json:"html"`
}

func (d Dependencies) renderRichText(_ context.Context, props Props) (any, error) {
	raw, err := stringProp(props, "html")
	if err != nil {
		return nil, err
	}
	if err := validation.Validate(raw, validation.Required); err != nil {
		return nil, fmt.Errorf("%w: html %v", ErrPropsInvalid, err)
	}
	return RichTextView{HTML: d.Sanitizer.Sanitize(raw)}, nil
}

// NewsletterView is the payload of the newsletter widget.
type NewsletterView struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ButtonLabel string `json:"button_label"`
	ActionURL   string `json:"action_url,omitempty"`
}

func renderNewsletter(_ context.Context, props Props) (any, error) {
	title, errTitle := stringProp(props, "title")
	description, errDescription := stringProp(props, "description")
	label, errLabel := stringProp(props, "button_label")
	action, errAction := stringProp(props, "action_url")
	if err := firstErr(errTitle, errDescription, errLabel, errAction); err != nil {
		return nil, err
	}
	view := NewsletterView{
		Title:       title,
		Description: description,
		ButtonLabel: label,
		ActionURL:   action,
	}
	if view.Title == "" {
		view.Title = "Stay in the loop"
	}
	if view.ButtonLabel == "" {
		view.ButtonLabel = "Subscribe"
	}
	if err := validation.ValidateStruct(&view,
		validation.Field(&view.ActionURL, validation.Length(0, 2048)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPropsInvalid, err)
	}
	return view, nil
}
