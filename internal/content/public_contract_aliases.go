package content

import (
	"strings"

	delivery "github.com/goliatone/go-delivery/content"
)

type (
	Article       = delivery.Article
	Category      = delivery.Category
	Tag           = delivery.Tag
	Layout        = delivery.Layout
	WidgetNode    = delivery.WidgetNode
	NotFoundError = delivery.NotFoundError
	Repository    = delivery.Repository
	Writer        = delivery.Writer
	Store         = delivery.Store
)

var (
	ErrSlugRequired    = delivery.ErrSlugRequired
	ErrSlugInvalid     = delivery.ErrSlugInvalid
	ErrTitleRequired   = delivery.ErrTitleRequired
	ErrPageKeyRequired = delivery.ErrPageKeyRequired
)

// IsNotFound reports whether err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	return delivery.IsNotFound(err)
}

// NormalizeSlug applies the shared slug rules.
func NormalizeSlug(value string) (string, error) {
	return delivery.NormalizeSlug(value)
}

// NormalizePageKey slug-normalizes a page key, falling back to the trimmed
// value when it cannot be normalized.
func NormalizePageKey(value string) string {
	if normalized, err := delivery.NormalizeSlug(value); err == nil {
		return normalized
	}
	return strings.TrimSpace(value)
}
