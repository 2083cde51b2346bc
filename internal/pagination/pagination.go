package pagination

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-delivery/internal/logging"
	"github.com/goliatone/go-delivery/internal/runtimeconfig"
	"github.com/goliatone/go-delivery/pkg/interfaces"
)

// Kind names a listing dimension.
type Kind string

const (
	KindChronological Kind = runtimeconfig.DimensionChronological
	KindCategory      Kind = runtimeconfig.DimensionCategory
	KindTag           Kind = runtimeconfig.DimensionTag
)

var ErrDimensionInvalid = errors.New("pagination: dimension is invalid")

// Dimension identifies one paginated listing: the global feed, or the feed
// scoped to a category or tag slug.
type Dimension struct {
	Kind Kind
	Slug string
}

func Chronological() Dimension {
	return Dimension{Kind: KindChronological}
}

func Category(slug string) Dimension {
	return Dimension{Kind: KindCategory, Slug: slug}
}

func Tag(slug string) Dimension {
	return Dimension{Kind: KindTag, Slug: slug}
}

func (d Dimension) String() string {
	if d.Slug == "" {
		return string(d.Kind)
	}
	return string(d.Kind) + ":" + d.Slug
}

// Validate checks that the kind is known and that scoped kinds carry a slug.
func (d Dimension) Validate() error {
	err := validation.ValidateStruct(&d,
		validation.Field(&d.Kind, validation.Required, validation.In(KindChronological, KindCategory, KindTag)),
		validation.Field(&d.Slug,
			validation.When(d.Kind == KindCategory || d.Kind == KindTag, validation.Required),
			validation.When(d.Kind == KindChronological, validation.Empty),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDimensionInvalid, err)
	}
	return nil
}

// FetchSpec is the single repository read a listing page needs. Listings
// refetch the whole prefix [0, Limit) on every page, so Offset is always 0
// and Limit grows with Page. Last marks the highest page the adapter will
// serve; requests beyond it are clamped back to it.
type FetchSpec struct {
	Page     int
	PageSize int
	Offset   int
	Limit    int
	Last     bool
}

// FetchCount is the number of items requested for the page.
func (s FetchSpec) FetchCount() int {
	return s.Limit
}

// HasMore reports whether a further page may exist. A full window implies
// more items; a short one means the listing is exhausted. The last servable
// page never has more.
func HasMore(returned int, spec FetchSpec) bool {
	return !spec.Last && spec.Limit > 0 && returned >= spec.Limit
}

// ParsePage converts a query token into a page number. Anything that is not
// a positive integer maps to the first page; positive integers too large for
// an int saturate at math.MaxInt so Window can clamp them.
func ParsePage(token string) int {
	page, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && page > 0 {
			return math.MaxInt
		}
		return 1
	}
	if page < 1 {
		return 1
	}
	return page
}

// Adapter sizes listing windows per dimension.
type Adapter struct {
	config runtimeconfig.PaginationConfig
	logger interfaces.Logger
}

type Option func(*Adapter)

func WithLogger(logger interfaces.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func NewAdapter(cfg runtimeconfig.PaginationConfig, opts ...Option) *Adapter {
	adapter := &Adapter{config: cfg, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(adapter)
		}
	}
	return adapter
}

// PageSize returns the configured size for dimension.
func (a *Adapter) PageSize(dimension Dimension) int {
	return a.config.PageSize(string(dimension.Kind))
}

// Window computes the fetch for page of dimension. Page 0 and negative pages
// are treated as the first page. Pages past MaxPage, or so deep that
// page*size would overflow, are clamped to the last servable page.
func (a *Adapter) Window(dimension Dimension, page int) FetchSpec {
	if page < 1 {
		page = 1
	}
	size := a.PageSize(dimension)
	last := a.LastPage(dimension)
	if page > last {
		a.logger.Debug("pagination.page.clamped", "dimension", dimension.String(), "requested", page, "last_page", last)
		page = last
	}
	return FetchSpec{
		Page:     page,
		PageSize: size,
		Offset:   0,
		Limit:    page * size,
		Last:     page == last,
	}
}

// LastPage is the highest page Window serves for dimension: MaxPage when
// configured, otherwise the deepest page whose window fits in an int.
func (a *Adapter) LastPage(dimension Dimension) int {
	last := math.MaxInt / a.PageSize(dimension)
	if limit := a.config.MaxPage; limit > 0 && limit < last {
		last = limit
	}
	return last
}
