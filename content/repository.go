package content

import "context"

// Repository is the read contract the delivery core consumes. Missing
// records are reported with *NotFoundError; feeds are ordered newest first
// and return an empty slice when nothing matches.
type Repository interface {
	GetLayout(ctx context.Context, pageKey string) (*Layout, error)
	GetFeed(ctx context.Context, offset, limit int) ([]*Article, error)
	GetStaffPicks(ctx context.Context) ([]*Article, error)
	GetCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, slug string) (*Category, error)
	GetCategoryFeed(ctx context.Context, slug string, offset, limit int) ([]*Article, error)
	GetTag(ctx context.Context, slug string) (*Tag, error)
	GetTagFeed(ctx context.Context, slug string, offset, limit int) ([]*Article, error)
	GetArticle(ctx context.Context, slug string) (*Article, error)
}

// Writer persists records. Saves are upserts keyed by slug or page key.
type Writer interface {
	SaveArticle(ctx context.Context, article *Article) (*Article, error)
	SaveCategory(ctx context.Context, category *Category) (*Category, error)
	SaveTag(ctx context.Context, tag *Tag) (*Tag, error)
	SaveLayout(ctx context.Context, layout *Layout) (*Layout, error)
}

// Store combines read and write access for adapters that own their data.
type Store interface {
	Repository
	Writer
}
