package ingest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/goliatone/go-delivery/internal/content"
)

// FeedOptions tunes how feed items map onto articles.
type FeedOptions struct {
	// Category assigns every item to this category slug. When blank the
	// first item category is used.
	Category string
	// Limit caps the number of items imported; zero imports all.
	Limit int
	// StaffPicks marks imported items as staff picks.
	StaffPicks bool
}

// ImportFeed reads an RSS, Atom or JSON feed from a URL or a local path and
// saves each item as an article.
func (i *Importer) ImportFeed(ctx context.Context, source string, opts FeedOptions) (*Result, error) {
	feed, err := parseFeed(ctx, source)
	if err != nil {
		return nil, err
	}
	result := &Result{}
	seen := map[string]bool{}
	for index, item := range feed.Items {
		if opts.Limit > 0 && index >= opts.Limit {
			break
		}
		article := feedArticle(item, opts)
		if article == nil {
			result.Skipped = append(result.Skipped, item.Link)
			continue
		}
		if err := i.saveArticle(ctx, article, result, seen); err != nil {
			return result, fmt.Errorf("ingest: feed item %q: %w", item.Title, err)
		}
	}
	i.logger.Info("ingest.feed.completed", "source", source, "title", feed.Title, "articles", len(result.Articles), "skipped", len(result.Skipped))
	return result, nil
}

func parseFeed(ctx context.Context, source string) (*gofeed.Feed, error) {
	parser := gofeed.NewParser()
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		feed, err := parser.ParseURLWithContext(source, ctx)
		if err != nil {
			return nil, fmt.Errorf("ingest: fetch feed %s: %w", source, err)
		}
		return feed, nil
	}
	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("ingest: open feed: %w", err)
	}
	defer file.Close()
	feed, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("ingest: parse feed %s: %w", source, err)
	}
	return feed, nil
}

// feedArticle maps item to an article, or nil when the item has no usable
// title.
func feedArticle(item *gofeed.Item, opts FeedOptions) *content.Article {
	if item == nil || strings.TrimSpace(item.Title) == "" {
		return nil
	}
	slug, err := content.NormalizeSlug(item.Title)
	if err != nil {
		return nil
	}
	article := &content.Article{
		Slug:        slug,
		Title:       strings.TrimSpace(item.Title),
		Summary:     strings.TrimSpace(item.Description),
		Body:        strings.TrimSpace(item.Content),
		StaffPick:   opts.StaffPicks,
		PublishedAt: itemTime(item),
	}
	if article.Body == "" {
		article.Body = article.Summary
	}
	if item.Author != nil {
		article.Author = item.Author.Name
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		article.Author = item.Authors[0].Name
	}
	if item.Image != nil {
		article.ImageURL = item.Image.URL
	}

	categories := item.Categories
	switch {
	case opts.Category != "":
		article.CategorySlug = opts.Category
	case len(categories) > 0:
		article.CategorySlug = categories[0]
		categories = categories[1:]
	}
	article.Tags = append([]string(nil), categories...)
	normalizeTaxonomy(article)
	return article
}

func itemTime(item *gofeed.Item) time.Time {
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.UTC()
	default:
		return time.Now().UTC().Truncate(time.Second)
	}
}
