package content

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/goliatone/go-delivery/content"
)

// MemoryStore is an in-memory Store for scaffolding, demos and tests.
type MemoryStore struct {
	mu         sync.RWMutex
	articles   map[string]*Article
	categories map[string]*Category
	tags       map[string]*Tag
	layouts    map[string]*Layout
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		articles:   make(map[string]*Article),
		categories: make(map[string]*Category),
		tags:       make(map[string]*Tag),
		layouts:    make(map[string]*Layout),
	}
}

func (m *MemoryStore) GetLayout(_ context.Context, pageKey string) (*Layout, error) {
	key, err := content.NormalizeSlug(pageKey)
	if err != nil {
		return nil, &NotFoundError{Resource: "layout", Key: pageKey}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	layout, ok := m.layouts[key]
	if !ok {
		return nil, &NotFoundError{Resource: "layout", Key: key}
	}
	return layout.Clone(), nil
}

func (m *MemoryStore) GetFeed(_ context.Context, offset, limit int) ([]*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return window(m.sortedArticles(func(*Article) bool { return true }), offset, limit), nil
}

func (m *MemoryStore) GetStaffPicks(_ context.Context) ([]*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	picks := m.sortedArticles(func(a *Article) bool { return a.StaffPick })
	return content.CloneArticles(picks), nil
}

// GetCategories returns categories ordered by position, then name.
func (m *MemoryStore) GetCategories(_ context.Context) ([]*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Category, 0, len(m.categories))
	for _, category := range m.categories {
		out = append(out, category.Clone())
	}
	slices.SortFunc(out, func(a, b *Category) int {
		if c := cmp.Compare(a.Position, b.Position); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (m *MemoryStore) GetCategory(_ context.Context, slug string) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	category, ok := m.categories[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: slug}
	}
	return category.Clone(), nil
}

func (m *MemoryStore) GetCategoryFeed(_ context.Context, slug string, offset, limit int) ([]*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := m.sortedArticles(func(a *Article) bool { return a.CategorySlug == slug })
	return window(matches, offset, limit), nil
}

func (m *MemoryStore) GetTag(_ context.Context, slug string) (*Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tag, ok := m.tags[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "tag", Key: slug}
	}
	return tag.Clone(), nil
}

func (m *MemoryStore) GetTagFeed(_ context.Context, slug string, offset, limit int) ([]*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := m.sortedArticles(func(a *Article) bool { return a.HasTag(slug) })
	return window(matches, offset, limit), nil
}

func (m *MemoryStore) GetArticle(_ context.Context, slug string) (*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	article, ok := m.articles[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "article", Key: slug}
	}
	return article.Clone(), nil
}

func (m *MemoryStore) SaveArticle(_ context.Context, article *Article) (*Article, error) {
	record, err := prepareArticle(article)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.articles[record.Slug] = record
	return record.Clone(), nil
}

func (m *MemoryStore) SaveCategory(_ context.Context, category *Category) (*Category, error) {
	record, err := prepareCategory(category)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.categories[record.Slug] = record
	return record.Clone(), nil
}

func (m *MemoryStore) SaveTag(_ context.Context, tag *Tag) (*Tag, error) {
	record, err := prepareTag(tag)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tags[record.Slug] = record
	return record.Clone(), nil
}

func (m *MemoryStore) SaveLayout(_ context.Context, layout *Layout) (*Layout, error) {
	record, err := prepareLayout(layout)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.layouts[record.PageKey] = record
	return record.Clone(), nil
}

// sortedArticles returns matching records newest first. Callers hold the lock
// and must clone before handing records out.
func (m *MemoryStore) sortedArticles(match func(*Article) bool) []*Article {
	out := make([]*Article, 0, len(m.articles))
	for _, article := range m.articles {
		if match(article) {
			out = append(out, article)
		}
	}
	slices.SortFunc(out, compareNewestFirst)
	return out
}

func compareNewestFirst(a, b *Article) int {
	if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.Slug, b.Slug)
}

func window(sorted []*Article, offset, limit int) []*Article {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || offset >= len(sorted) {
		return []*Article{}
	}
	end := len(sorted)
	if limit < end-offset {
		end = offset + limit
	}
	return content.CloneArticles(sorted[offset:end])
}
