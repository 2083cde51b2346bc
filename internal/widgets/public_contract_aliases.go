package widgets

import delivery "github.com/goliatone/go-delivery/widgets"

type (
	Props          = delivery.Props
	Renderer       = delivery.Renderer
	RendererFunc   = delivery.RendererFunc
	Slice          = delivery.Slice
	Registration   = delivery.Registration
	RenderedWidget = delivery.RenderedWidget
)

const (
	SliceFeed        = delivery.SliceFeed
	SliceStaffPicks  = delivery.SliceStaffPicks
	SliceCategories  = delivery.SliceCategories
	SliceScoped      = delivery.SliceScoped
	SliceLeadArticle = delivery.SliceLeadArticle
	SliceArticle     = delivery.SliceArticle
	SliceCategory    = delivery.SliceCategory
	SliceTag         = delivery.SliceTag
)

var (
	ErrTypeRequired     = delivery.ErrTypeRequired
	ErrRendererRequired = delivery.ErrRendererRequired
	ErrPropsInvalid     = delivery.ErrPropsInvalid
	ErrRenderPanic      = delivery.ErrRenderPanic
)
