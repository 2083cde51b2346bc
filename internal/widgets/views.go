package widgets

import (
	"time"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/links"
)

// ArticleCard is the article summary shared by list widgets.
type ArticleCard struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Author      string    `json:"author,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	URL         string    `json:"url"`
	Category    string    `json:"category,omitempty"`
	CategoryURL string    `json:"category_url,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// TopicLink points at a category listing.
type TopicLink struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func articleCard(article *content.Article, resolver *links.Resolver) ArticleCard {
	card := ArticleCard{
		Slug:        article.Slug,
		Title:       article.Title,
		Summary:     article.Summary,
		Author:      article.Author,
		ImageURL:    article.ImageURL,
		URL:         resolver.Article(article.Slug),
		Category:    article.CategorySlug,
		Tags:        append([]string(nil), article.Tags...),
		PublishedAt: article.PublishedAt,
	}
	if article.CategorySlug != "" {
		card.CategoryURL = resolver.Category(article.CategorySlug)
	}
	return card
}

// ArticleCards maps articles to cards, skipping nil entries.
func ArticleCards(articles []*content.Article, resolver *links.Resolver) []ArticleCard {
	cards := make([]ArticleCard, 0, len(articles))
	for _, article := range articles {
		if article == nil {
			continue
		}
		cards = append(cards, articleCard(article, resolver))
	}
	return cards
}

func topicLinks(categories []*content.Category, resolver *links.Resolver) []TopicLink {
	topics := make([]TopicLink, 0, len(categories))
	for _, category := range categories {
		if category == nil {
			continue
		}
		topics = append(topics, TopicLink{
			Slug: category.Slug,
			Name: category.Name,
			URL:  resolver.Category(category.Slug),
		})
	}
	return topics
}
