package layouts

import (
	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/widgets"
)

// DefaultHomeLayout is the layout served when no usable home layout is
// stored: hero, staff picks, topics and the feed, in that order.
func DefaultHomeLayout(pageKey string) *content.Layout {
	return &content.Layout{
		PageKey:  pageKey,
		Title:    "Home",
		IsActive: true,
		Widgets: []content.WidgetNode{
			{Type: widgets.TypeHero, Props: map[string]any{
				"headline":    "Top story",
				"subheadline": "The latest stories from the newsroom",
				"cta_label":   "Read more",
			}},
			{Type: widgets.TypeStaffPicks, Props: map[string]any{
				"title": "Staff picks",
				"limit": 4,
			}},
			{Type: widgets.TypeTopics, Props: map[string]any{
				"title": "Topics",
			}},
			{Type: widgets.TypeFeed, Props: map[string]any{
				"title": "Latest",
				"limit": 10,
			}},
		},
	}
}

// DefaultArticleLayout frames an article detail page: the body followed by
// staff picks and topics.
func DefaultArticleLayout(slug string) *content.Layout {
	return &content.Layout{
		PageKey:  slug,
		IsActive: true,
		Widgets: []content.WidgetNode{
			{Type: widgets.TypeArticleBody},
			{Type: widgets.TypeStaffPicks, Props: map[string]any{
				"title": "Staff picks",
				"limit": 3,
			}},
			{Type: widgets.TypeTopics, Props: map[string]any{
				"title": "More topics",
			}},
		},
	}
}
