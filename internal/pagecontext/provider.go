package pagecontext

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/logging"
	"github.com/goliatone/go-delivery/internal/pagination"
	"github.com/goliatone/go-delivery/internal/runtimeconfig"
	"github.com/goliatone/go-delivery/pkg/interfaces"
	"github.com/goliatone/go-delivery/widgets"
)

var (
	ErrPrimaryNotFound = errors.New("pagecontext: primary entity not found")
	ErrKindUnknown     = errors.New("pagecontext: page kind unknown")
	ErrScopeRequired   = errors.New("pagecontext: scope slug required")
	ErrWindowInvalid   = errors.New("pagecontext: fetch window is invalid")
)

// manifests lists, per page kind, every slice the page reads. Order is the
// order results are applied, not the order reads complete.
var manifests = map[Kind][]widgets.Slice{
	KindHome:          {widgets.SliceFeed, widgets.SliceStaffPicks, widgets.SliceCategories},
	KindStandalone:    {widgets.SliceFeed, widgets.SliceStaffPicks, widgets.SliceCategories},
	KindChronological: {widgets.SliceScoped},
	KindCategory:      {widgets.SliceCategory, widgets.SliceScoped},
	KindTag:           {widgets.SliceTag, widgets.SliceScoped},
	KindArticle:       {widgets.SliceArticle, widgets.SliceStaffPicks, widgets.SliceCategories},
}

// primary slices are the entities a page exists for; losing one is fatal.
var primary = map[widgets.Slice]bool{
	widgets.SliceArticle:  true,
	widgets.SliceCategory: true,
	widgets.SliceTag:      true,
}

// Manifest returns the slices read for kind.
func Manifest(kind Kind) []widgets.Slice {
	return append([]widgets.Slice(nil), manifests[kind]...)
}

// Request describes the page being built. Scope is the category, tag or
// article slug; Window sizes feed reads.
type Request struct {
	Kind   Kind
	Scope  string
	Window pagination.FetchSpec
}

// Provider assembles a Context by issuing every manifest read concurrently.
type Provider struct {
	repo   content.Repository
	logger interfaces.Logger
}

type Option func(*Provider)

func WithLogger(logger interfaces.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func NewProvider(repo content.Repository, opts ...Option) *Provider {
	provider := &Provider{repo: repo, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(provider)
		}
	}
	return provider
}

type result struct {
	apply func(*Context)
	err   error
}

// Build reads every slice in the manifest for req.Kind and joins them. A
// failed secondary read leaves its slice empty and is recorded as degraded;
// a failed primary read returns ErrPrimaryNotFound. A zero Window reads the
// first default-sized window.
func (p *Provider) Build(ctx context.Context, req Request) (*Context, error) {
	slicesToLoad, ok := manifests[req.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKindUnknown, req.Kind)
	}
	if needsScope(req.Kind) && req.Scope == "" {
		return nil, fmt.Errorf("%w: %s", ErrScopeRequired, req.Kind)
	}
	switch {
	case req.Window == (pagination.FetchSpec{}):
		req.Window = firstWindow()
	case req.Window.Limit <= 0 || req.Window.Offset < 0:
		return nil, fmt.Errorf("%w: offset %d limit %d", ErrWindowInvalid, req.Window.Offset, req.Window.Limit)
	}

	results := make([]result, len(slicesToLoad))
	var wg sync.WaitGroup
	for i, slice := range slicesToLoad {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					results[i] = result{err: fmt.Errorf("pagecontext: %s read panicked: %v", slice, rec)}
				}
			}()
			apply, err := p.load(ctx, slice, req)
			results[i] = result{apply: apply, err: err}
		}()
	}
	wg.Wait()

	logger := logging.WithPageContext(p.logger, req.Scope, string(req.Kind))
	built := &Context{kind: req.Kind}
	for i, slice := range slicesToLoad {
		res := results[i]
		if res.err != nil {
			if primary[slice] {
				logger.Debug("context.primary.missing", "slice", string(slice), "error", res.err)
				return nil, fmt.Errorf("%w: %s %q: %w", ErrPrimaryNotFound, slice, req.Scope, res.err)
			}
			logger.Warn("context.slice.degraded", "slice", string(slice), "error", res.err)
			built.degraded = append(built.degraded, slice)
			continue
		}
		res.apply(built)
	}
	return built, nil
}

func (p *Provider) load(ctx context.Context, slice widgets.Slice, req Request) (func(*Context), error) {
	window := req.Window
	switch slice {
	case widgets.SliceFeed:
		feed, err := p.repo.GetFeed(ctx, window.Offset, window.Limit)
		return func(c *Context) { c.feed = feed }, err
	case widgets.SliceStaffPicks:
		picks, err := p.repo.GetStaffPicks(ctx)
		return func(c *Context) { c.staffPicks = picks }, err
	case widgets.SliceCategories:
		categories, err := p.repo.GetCategories(ctx)
		return func(c *Context) { c.categories = categories }, err
	case widgets.SliceScoped:
		scoped, err := p.scoped(ctx, req)
		return func(c *Context) { c.scoped = scoped }, err
	case widgets.SliceArticle:
		article, err := p.repo.GetArticle(ctx, req.Scope)
		return func(c *Context) { c.article = article }, nilIfMissing(article, "article", req.Scope, err)
	case widgets.SliceCategory:
		category, err := p.repo.GetCategory(ctx, req.Scope)
		return func(c *Context) { c.category = category }, nilIfMissing(category, "category", req.Scope, err)
	case widgets.SliceTag:
		tag, err := p.repo.GetTag(ctx, req.Scope)
		return func(c *Context) { c.tag = tag }, nilIfMissing(tag, "tag", req.Scope, err)
	default:
		return nil, fmt.Errorf("pagecontext: no loader for slice %q", slice)
	}
}

func (p *Provider) scoped(ctx context.Context, req Request) ([]*content.Article, error) {
	window := req.Window
	switch req.Kind {
	case KindCategory:
		return p.repo.GetCategoryFeed(ctx, req.Scope, window.Offset, window.Limit)
	case KindTag:
		return p.repo.GetTagFeed(ctx, req.Scope, window.Offset, window.Limit)
	default:
		return p.repo.GetFeed(ctx, window.Offset, window.Limit)
	}
}

// nilIfMissing turns a nil entity returned without error into a not-found,
// so adapters that signal absence with (nil, nil) are handled the same way.
func nilIfMissing[T any](entity *T, resource, key string, err error) error {
	if err != nil {
		return err
	}
	if entity == nil {
		return &content.NotFoundError{Resource: resource, Key: key}
	}
	return nil
}

func needsScope(kind Kind) bool {
	return kind == KindCategory || kind == KindTag || kind == KindArticle
}

func firstWindow() pagination.FetchSpec {
	size := runtimeconfig.DefaultPageSize
	return pagination.FetchSpec{Page: 1, PageSize: size, Limit: size}
}
