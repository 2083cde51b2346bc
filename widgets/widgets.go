package widgets

import "context"

// Props is the weakly typed property bag a widget receives. It holds the
// editor-declared layout props merged with any bound content slices.
type Props map[string]any

// Renderer turns props into a renderable payload for one widget type.
type Renderer interface {
	Render(ctx context.Context, props Props) (any, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, props Props) (any, error)

func (f RendererFunc) Render(ctx context.Context, props Props) (any, error) {
	return f(ctx, props)
}

// Slice names a piece of the page content context a widget can bind.
type Slice string

const (
	SliceFeed        Slice = "feed"
	SliceStaffPicks  Slice = "staff_picks"
	SliceCategories  Slice = "categories"
	SliceScoped      Slice = "scoped"
	SliceLeadArticle Slice = "lead_article"
	SliceArticle     Slice = "article"
	SliceCategory    Slice = "category"
	SliceTag         Slice = "tag"
)

// Registration binds a widget type to its renderer. Bindings maps a prop key
// to the content slice injected under that key when the layout leaves the
// key undeclared.
type Registration struct {
	Renderer Renderer
	Bindings map[string]Slice
}

// RenderedWidget is one entry of a composed page. Position is the index of
// the source node in the layout.
type RenderedWidget struct {
	Type     string `json:"type"`
	Position int    `json:"position"`
	Data     any    `json:"data"`
}
