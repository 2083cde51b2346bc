package delivery

import (
	"github.com/goliatone/go-delivery/internal/widgets"
)

// Page is a composed layout: the rendered widgets in layout order.
type Page struct {
	Key         string                   `json:"key"`
	Kind        string                   `json:"kind"`
	Title       string                   `json:"title,omitempty"`
	Widgets     []widgets.RenderedWidget `json:"widgets"`
	UsesDefault bool                     `json:"uses_default,omitempty"`
	Degraded    []string                 `json:"degraded,omitempty"`
}

// Listing is one page of a paginated feed. Items holds the cumulative
// prefix up to Page, so page N always contains page N-1.
type Listing struct {
	Dimension string                `json:"dimension"`
	Items     []widgets.ArticleCard `json:"items"`
	HasMore   bool                  `json:"has_more"`
	Page      int                   `json:"page"`
	PageSize  int                   `json:"page_size"`
	NextURL   string                `json:"next_url,omitempty"`
	Category  *widgets.TopicLink    `json:"category,omitempty"`
	Tag       *widgets.TopicLink    `json:"tag,omitempty"`
	Degraded  []string              `json:"degraded,omitempty"`
}
