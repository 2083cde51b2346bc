// Package ingest loads articles and layouts from files and feeds into a
// content.Writer. It backs the seed tooling; the delivery core never calls it.
package ingest

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/logging"
	"github.com/goliatone/go-delivery/pkg/interfaces"
)

var ErrWriterRequired = errors.New("ingest: content writer required")

// Result summarises one import run.
type Result struct {
	Articles   []string `json:"articles"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
	Skipped    []string `json:"skipped,omitempty"`
}

// Importer writes parsed records through writer, creating the categories
// and tags articles reference.
type Importer struct {
	writer content.Writer
	logger interfaces.Logger
	titler cases.Caser
}

type Option func(*Importer)

func WithLogger(logger interfaces.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

func NewImporter(writer content.Writer, opts ...Option) (*Importer, error) {
	if writer == nil {
		return nil, ErrWriterRequired
	}
	importer := &Importer{
		writer: writer,
		logger: logging.NoOp(),
		titler: cases.Title(language.English),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(importer)
		}
	}
	return importer, nil
}

// saveArticle stores article along with its category and tags. Taxonomy
// records are saved once per run.
func (i *Importer) saveArticle(ctx context.Context, article *content.Article, result *Result, seen map[string]bool) error {
	if slug := article.CategorySlug; slug != "" && !seen["category:"+slug] {
		category, err := i.writer.SaveCategory(ctx, &content.Category{Slug: slug, Name: i.displayName(slug)})
		if err != nil {
			return err
		}
		seen["category:"+slug] = true
		result.Categories = append(result.Categories, category.Slug)
	}
	for _, slug := range article.Tags {
		if seen["tag:"+slug] {
			continue
		}
		tag, err := i.writer.SaveTag(ctx, &content.Tag{Slug: slug, Name: i.displayName(slug)})
		if err != nil {
			return err
		}
		seen["tag:"+slug] = true
		result.Tags = append(result.Tags, tag.Slug)
	}
	saved, err := i.writer.SaveArticle(ctx, article)
	if err != nil {
		return err
	}
	result.Articles = append(result.Articles, saved.Slug)
	return nil
}

// displayName turns a slug such as "open-source" into "Open Source".
func (i *Importer) displayName(slug string) string {
	return i.titler.String(strings.ReplaceAll(slug, "-", " "))
}

// normalizeTaxonomy slugifies the category and tags of article, dropping
// entries that do not normalize.
func normalizeTaxonomy(article *content.Article) {
	if article.CategorySlug != "" {
		slug, err := content.NormalizeSlug(article.CategorySlug)
		if err != nil {
			slug = ""
		}
		article.CategorySlug = slug
	}
	tags := make([]string, 0, len(article.Tags))
	for _, raw := range article.Tags {
		if slug, err := content.NormalizeSlug(raw); err == nil {
			tags = append(tags, slug)
		}
	}
	article.Tags = tags
}
