package delivery

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const pageUnavailableCode = "PAGE_UNAVAILABLE"

// ErrPageUnavailable is the only error a composed page reports to callers:
// the page, listing or article does not exist or cannot be shown.
var ErrPageUnavailable = errors.New("delivery: page unavailable")

func unavailable(resource, key string, cause error) error {
	err := fmt.Errorf("%w: %s %q", ErrPageUnavailable, resource, key)
	if cause != nil {
		err = fmt.Errorf("%w: %s %q: %w", ErrPageUnavailable, resource, key, cause)
	}
	return goerrors.Wrap(err, goerrors.CategoryNotFound, "page not found").
		WithTextCode(pageUnavailableCode)
}

// IsPageUnavailable reports whether err marks a missing page.
func IsPageUnavailable(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrPageUnavailable) || goerrors.IsCategory(err, goerrors.CategoryNotFound)
}
