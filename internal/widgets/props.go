package widgets

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-delivery/internal/content"
)

// Layout props arrive as decoded JSON (strings, float64, bool) while bound
// slices arrive as typed content records. The readers below accept both and
// report anything else as ErrPropsInvalid.

func stringProp(props Props, key string) (string, error) {
	switch value := props[key].(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(value), nil
	case fmt.Stringer:
		return strings.TrimSpace(value.String()), nil
	default:
		return "", invalidProp(key, value)
	}
}

func intProp(props Props, key string, fallback int) (int, error) {
	switch value := props[key].(type) {
	case nil:
		return fallback, nil
	case int:
		return value, nil
	case int64:
		return int(value), nil
	case float64:
		if value != float64(int(value)) {
			return 0, invalidProp(key, value)
		}
		return int(value), nil
	case json.Number:
		parsed, err := value.Int64()
		if err != nil {
			return 0, invalidProp(key, value)
		}
		return int(parsed), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, invalidProp(key, value)
		}
		return parsed, nil
	default:
		return 0, invalidProp(key, value)
	}
}

func articlesProp(props Props, key string) ([]*content.Article, error) {
	switch value := props[key].(type) {
	case nil:
		return []*content.Article{}, nil
	case []*content.Article:
		return value, nil
	default:
		return nil, invalidProp(key, value)
	}
}

func categoriesProp(props Props, key string) ([]*content.Category, error) {
	switch value := props[key].(type) {
	case nil:
		return []*content.Category{}, nil
	case []*content.Category:
		return value, nil
	default:
		return nil, invalidProp(key, value)
	}
}

func articleProp(props Props, key string) (*content.Article, error) {
	switch value := props[key].(type) {
	case nil:
		return nil, nil
	case *content.Article:
		return value, nil
	default:
		return nil, invalidProp(key, value)
	}
}

func categoryProp(props Props, key string) (*content.Category, error) {
	switch value := props[key].(type) {
	case nil:
		return nil, nil
	case *content.Category:
		return value, nil
	default:
		return nil, invalidProp(key, value)
	}
}

func tagProp(props Props, key string) (*content.Tag, error) {
	switch value := props[key].(type) {
	case nil:
		return nil, nil
	case *content.Tag:
		return value, nil
	default:
		return nil, invalidProp(key, value)
	}
}

func invalidProp(key string, value any) error {
	return fmt.Errorf("%w: %s has unsupported type %T", ErrPropsInvalid, key, value)
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
