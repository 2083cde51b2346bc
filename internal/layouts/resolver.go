package layouts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/logging"
	"github.com/goliatone/go-delivery/internal/runtimeconfig"
	"github.com/goliatone/go-delivery/pkg/interfaces"
)

// ErrPageUnavailable reports a standalone page that is missing, inactive or
// could not be read. It is a not-found condition.
var ErrPageUnavailable = errors.New("layouts: page unavailable")

// Resolution is the layout chosen for a page key.
type Resolution struct {
	Layout      *content.Layout
	UsesDefault bool
}

// Resolver decides which layout a page renders with.
type Resolver struct {
	repo    content.Repository
	homeKey string
	logger  interfaces.Logger
}

type Option func(*Resolver)

func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithHomeKey overrides the page key treated as the home page. The key is
// slug-normalized like every other page key.
func WithHomeKey(key string) Option {
	return func(r *Resolver) {
		if normalized := content.NormalizePageKey(key); normalized != "" {
			r.homeKey = normalized
		}
	}
}

func NewResolver(repo content.Repository, opts ...Option) *Resolver {
	resolver := &Resolver{
		repo:    repo,
		homeKey: content.NormalizePageKey(runtimeconfig.DefaultConfig().Layouts.HomeKey),
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(resolver)
		}
	}
	return resolver
}

// HomeKey reports the page key served at the site root.
func (r *Resolver) HomeKey() string {
	return r.homeKey
}

// IsHome reports whether pageKey addresses the home page.
func (r *Resolver) IsHome(pageKey string) bool {
	return content.NormalizePageKey(pageKey) == r.homeKey
}

// Resolve loads the layout for pageKey. The home page never fails: when its
// layout is missing, inactive or unreadable the built-in default is used.
// Any other page in those states yields ErrPageUnavailable.
func (r *Resolver) Resolve(ctx context.Context, pageKey string) (*Resolution, error) {
	key := strings.TrimSpace(pageKey)
	if key == "" {
		return nil, content.ErrPageKeyRequired
	}
	logger := logging.WithPageContext(r.logger, key, "")

	layout, err := r.repo.GetLayout(ctx, key)
	reason := unusableReason(layout, err)
	if reason == "" {
		return &Resolution{Layout: layout}, nil
	}

	if r.IsHome(key) {
		logger.Info("layout.home.default", "reason", reason, "error", err)
		return &Resolution{Layout: DefaultHomeLayout(r.homeKey), UsesDefault: true}, nil
	}
	if err != nil && !content.IsNotFound(err) {
		logger.Warn("layout.read.failed", "error", err)
	}
	return nil, fmt.Errorf("%w: %q %s", ErrPageUnavailable, key, reason)
}

func unusableReason(layout *content.Layout, err error) string {
	switch {
	case err != nil && content.IsNotFound(err):
		return "missing"
	case err != nil:
		return "unreadable"
	case layout == nil:
		return "missing"
	case !layout.IsActive:
		return "inactive"
	default:
		return ""
	}
}
