package content

import (
	"strings"

	"github.com/goliatone/go-delivery/content"
	"github.com/goliatone/go-delivery/internal/identity"
)

// prepareArticle normalizes slugs, assigns a deterministic id and refreshes
// the tag index column. The input is left untouched.
func prepareArticle(article *Article) (*Article, error) {
	if article == nil {
		return nil, ErrSlugRequired
	}
	record := article.Clone()
	slug, err := content.NormalizeSlug(record.Slug)
	if err != nil {
		return nil, err
	}
	record.Slug = slug
	if strings.TrimSpace(record.Title) == "" {
		return nil, ErrTitleRequired
	}
	if record.CategorySlug != "" {
		if record.CategorySlug, err = content.NormalizeSlug(record.CategorySlug); err != nil {
			return nil, err
		}
	}
	tags := make([]string, 0, len(record.Tags))
	seen := make(map[string]struct{}, len(record.Tags))
	for _, tag := range record.Tags {
		normalized, err := content.NormalizeSlug(tag)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		tags = append(tags, normalized)
	}
	record.Tags = tags
	record.SyncTagList()
	record.ID = identity.ArticleUUID(record.Slug)
	return record, nil
}

func prepareCategory(category *Category) (*Category, error) {
	if category == nil {
		return nil, ErrSlugRequired
	}
	record := category.Clone()
	slug, err := content.NormalizeSlug(record.Slug)
	if err != nil {
		return nil, err
	}
	record.Slug = slug
	if strings.TrimSpace(record.Name) == "" {
		record.Name = slug
	}
	record.ID = identity.CategoryUUID(slug)
	return record, nil
}

func prepareTag(tag *Tag) (*Tag, error) {
	if tag == nil {
		return nil, ErrSlugRequired
	}
	record := tag.Clone()
	slug, err := content.NormalizeSlug(record.Slug)
	if err != nil {
		return nil, err
	}
	record.Slug = slug
	if strings.TrimSpace(record.Name) == "" {
		record.Name = slug
	}
	record.ID = identity.TagUUID(slug)
	return record, nil
}

func prepareLayout(layout *Layout) (*Layout, error) {
	if layout == nil || strings.TrimSpace(layout.PageKey) == "" {
		return nil, ErrPageKeyRequired
	}
	record := layout.Clone()
	key, err := content.NormalizeSlug(record.PageKey)
	if err != nil {
		return nil, err
	}
	record.PageKey = key
	if record.Widgets == nil {
		record.Widgets = []WidgetNode{}
	}
	record.ID = identity.LayoutUUID(key)
	return record, nil
}
