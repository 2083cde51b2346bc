package content

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-delivery/content"
)

// BunStore implements Store on top of go-repository-bun, optionally wrapped
// in a go-repository-cache read-through cache.
type BunStore struct {
	articles   repository.Repository[*Article]
	categories repository.Repository[*Category]
	tags       repository.Repository[*Tag]
	layouts    repository.Repository[*Layout]

	cacheService cache.CacheService
}

var _ Store = (*BunStore)(nil)

var cacheNamespaces = []string{"article", "category", "tag", "layout"}

// NewBunStore creates a store without caching.
func NewBunStore(db *bun.DB) *BunStore {
	return NewBunStoreWithCache(db, nil, nil)
}

// NewBunStoreWithCache creates a store whose repositories read through the
// supplied cache. A nil service or serializer disables caching.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunStore {
	store := &BunStore{
		articles:   wrapWithCache(NewArticleRepository(db), cacheService, keySerializer),
		categories: wrapWithCache(NewCategoryRepository(db), cacheService, keySerializer),
		tags:       wrapWithCache(NewTagRepository(db), cacheService, keySerializer),
		layouts:    wrapWithCache(NewLayoutRepository(db), cacheService, keySerializer),
	}
	if cacheService != nil && keySerializer != nil {
		store.cacheService = cacheService
	}
	return store
}

func (s *BunStore) GetLayout(ctx context.Context, pageKey string) (*Layout, error) {
	key, err := content.NormalizeSlug(pageKey)
	if err != nil {
		return nil, &NotFoundError{Resource: "layout", Key: pageKey}
	}
	record, err := s.layouts.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, "layout", key)
	}
	return record, nil
}

func (s *BunStore) GetFeed(ctx context.Context, offset, limit int) ([]*Article, error) {
	return s.listArticles(ctx, offset, limit, nil)
}

func (s *BunStore) GetStaffPicks(ctx context.Context) ([]*Article, error) {
	records, _, err := s.articles.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return newestFirst(q.Where("?TableAlias.staff_pick = ?", true))
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "article", "staff_picks")
	}
	return nonNil(records), nil
}

func (s *BunStore) GetCategories(ctx context.Context) ([]*Category, error) {
	records, _, err := s.categories.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.position ASC").OrderExpr("?TableAlias.name ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "category", "")
	}
	if records == nil {
		records = []*Category{}
	}
	return records, nil
}

func (s *BunStore) GetCategory(ctx context.Context, slug string) (*Category, error) {
	record, err := s.categories.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "category", slug)
	}
	return record, nil
}

func (s *BunStore) GetCategoryFeed(ctx context.Context, slug string, offset, limit int) ([]*Article, error) {
	return s.listArticles(ctx, offset, limit, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.category_slug = ?", slug)
	})
}

func (s *BunStore) GetTag(ctx context.Context, slug string) (*Tag, error) {
	record, err := s.tags.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "tag", slug)
	}
	return record, nil
}

func (s *BunStore) GetTagFeed(ctx context.Context, slug string, offset, limit int) ([]*Article, error) {
	return s.listArticles(ctx, offset, limit, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.tag_list LIKE ?", "%,"+slug+",%")
	})
}

func (s *BunStore) GetArticle(ctx context.Context, slug string) (*Article, error) {
	record, err := s.articles.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "article", slug)
	}
	return record, nil
}

func (s *BunStore) SaveArticle(ctx context.Context, article *Article) (*Article, error) {
	record, err := prepareArticle(article)
	if err != nil {
		return nil, err
	}
	return upsert(ctx, s, s.articles, record, "article", record.Slug)
}

func (s *BunStore) SaveCategory(ctx context.Context, category *Category) (*Category, error) {
	record, err := prepareCategory(category)
	if err != nil {
		return nil, err
	}
	return upsert(ctx, s, s.categories, record, "category", record.Slug)
}

func (s *BunStore) SaveTag(ctx context.Context, tag *Tag) (*Tag, error) {
	record, err := prepareTag(tag)
	if err != nil {
		return nil, err
	}
	return upsert(ctx, s, s.tags, record, "tag", record.Slug)
}

func (s *BunStore) SaveLayout(ctx context.Context, layout *Layout) (*Layout, error) {
	record, err := prepareLayout(layout)
	if err != nil {
		return nil, err
	}
	return upsert(ctx, s, s.layouts, record, "layout", record.PageKey)
}

// InvalidateCache drops every cached read. It is a no-op without a cache.
func (s *BunStore) InvalidateCache(ctx context.Context) error {
	if s.cacheService == nil {
		return nil
	}
	var errs []error
	for _, namespace := range cacheNamespaces {
		if err := s.cacheService.DeleteByPrefix(ctx, namespace+cache.KeySeparator); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *BunStore) listArticles(ctx context.Context, offset, limit int, filter func(*bun.SelectQuery) *bun.SelectQuery) ([]*Article, error) {
	if limit <= 0 {
		return []*Article{}, nil
	}
	records, _, err := s.articles.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if filter != nil {
				q = filter(q)
			}
			return newestFirst(q)
		}),
		repository.SelectPaginate(limit, max(offset, 0)),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "article", "feed")
	}
	return nonNil(records), nil
}

// upsert updates the record when its deterministic id already exists and
// creates it otherwise.
func upsert[T any](ctx context.Context, s *BunStore, repo repository.Repository[T], record T, resource, key string) (T, error) {
	var zero T
	_, err := repo.GetByIdentifier(ctx, key)
	switch {
	case err == nil:
		saved, err := repo.Update(ctx, record)
		if err != nil {
			return zero, mapRepositoryError(err, resource, key)
		}
		record = saved
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		saved, err := repo.Create(ctx, record)
		if err != nil {
			return zero, mapRepositoryError(err, resource, key)
		}
		record = saved
	default:
		return zero, mapRepositoryError(err, resource, key)
	}
	if err := s.InvalidateCache(ctx); err != nil {
		return zero, fmt.Errorf("%s cache invalidation: %w", resource, err)
	}
	return record, nil
}

func newestFirst(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("?TableAlias.published_at DESC").OrderExpr("?TableAlias.slug ASC")
}

func nonNil(records []*Article) []*Article {
	if records == nil {
		return []*Article{}
	}
	return records
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
