package http

import (
	"context"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/delivery"
	"github.com/goliatone/go-delivery/internal/logging"
	"github.com/goliatone/go-delivery/internal/pagination"
	"github.com/goliatone/go-delivery/pkg/interfaces"
)

// ErrServiceRequired is returned when handlers are built without a service.
var ErrServiceRequired = errors.New("http: delivery service is required")

// Handlers serves the delivery routes.
type Handlers struct {
	service *delivery.Service
	homeKey string
	logger  interfaces.Logger
	limiter *limiter
}

type Option func(*Handlers)

func WithLogger(logger interfaces.Logger) Option {
	return func(h *Handlers) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithRateLimit caps requests per second across all routes.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(h *Handlers) {
		h.limiter = newLimiter(perSecond, burst)
	}
}

// WithHomeKey sets the page key served at "/".
func WithHomeKey(key string) Option {
	return func(h *Handlers) {
		if normalized := content.NormalizePageKey(key); normalized != "" {
			h.homeKey = normalized
		}
	}
}

func NewHandlers(service *delivery.Service, opts ...Option) (*Handlers, error) {
	if service == nil {
		return nil, ErrServiceRequired
	}
	h := &Handlers{
		service: service,
		homeKey: "home",
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

// Register mounts every route on r.
func Register[T any](r router.Router[T], h *Handlers) {
	r.Get("/health", h.route(func(context.Context, router.Context) (int, any) {
		return h.health()
	}))
	r.Get("/", h.route(func(ctx context.Context, _ router.Context) (int, any) {
		return h.page(ctx, h.homeKey)
	}))
	r.Get("/pages/:slug", h.route(func(ctx context.Context, c router.Context) (int, any) {
		return h.page(ctx, c.Param("slug"))
	}))
	r.Get("/articles", h.route(func(ctx context.Context, c router.Context) (int, any) {
		return h.listing(ctx, pagination.Chronological(), c.Query("page", ""))
	}))
	r.Get("/articles/:slug", h.route(func(ctx context.Context, c router.Context) (int, any) {
		return h.article(ctx, c.Param("slug"))
	}))
	r.Get("/categories/:slug", h.route(func(ctx context.Context, c router.Context) (int, any) {
		return h.listing(ctx, pagination.Category(c.Param("slug")), c.Query("page", ""))
	}))
	r.Get("/tags/:slug", h.route(func(ctx context.Context, c router.Context) (int, any) {
		return h.listing(ctx, pagination.Tag(c.Param("slug")), c.Query("page", ""))
	}))
}

type endpoint func(ctx context.Context, c router.Context) (int, any)

func (h *Handlers) route(fn endpoint) func(router.Context) error {
	return func(c router.Context) error {
		status, payload := h.serve(c.Context(), func(ctx context.Context) (int, any) {
			return fn(ctx, c)
		})
		return c.JSON(status, payload)
	}
}

// serve applies the rate limit and runs fn.
func (h *Handlers) serve(ctx context.Context, fn func(context.Context) (int, any)) (int, any) {
	if !h.limiter.allow() {
		h.logger.Warn("http.request.limited")
		return http.StatusTooManyRequests, rateLimitedResponse
	}
	return fn(ctx)
}

func (h *Handlers) health() (int, any) {
	return http.StatusOK, map[string]string{"status": "ok"}
}

func (h *Handlers) page(ctx context.Context, slug string) (int, any) {
	page, err := h.service.ComposePage(ctx, slug)
	if err != nil {
		return h.fail("page", slug, err)
	}
	return http.StatusOK, page
}

func (h *Handlers) article(ctx context.Context, slug string) (int, any) {
	page, err := h.service.ComposeArticle(ctx, slug)
	if err != nil {
		return h.fail("article", slug, err)
	}
	return http.StatusOK, page
}

func (h *Handlers) listing(ctx context.Context, dimension pagination.Dimension, pageToken string) (int, any) {
	listing, err := h.service.ComposeListing(ctx, dimension, pageToken)
	if err != nil {
		return h.fail("listing", dimension.String(), err)
	}
	return http.StatusOK, listing
}

func (h *Handlers) fail(resource, key string, err error) (int, any) {
	status, body := mapError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("http.request.failed", "resource", resource, "key", key, "error", err)
	} else {
		h.logger.Debug("http.request.rejected", "resource", resource, "key", key, "status", status)
	}
	return status, body
}
