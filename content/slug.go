package content

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// NormalizeSlug applies go-slug normalization and rejects blank results.
func NormalizeSlug(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", ErrSlugRequired
	}
	normalized, err := slug.Normalize(value)
	if err != nil {
		return "", err
	}
	if normalized == "" || !slug.IsValid(normalized) {
		return "", ErrSlugInvalid
	}
	return normalized, nil
}

// IsValidSlug reports whether value already matches the slug rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
