package widgets

import "errors"

var (
	ErrTypeRequired     = errors.New("widgets: type required")
	ErrRendererRequired = errors.New("widgets: renderer required")
	ErrPropsInvalid     = errors.New("widgets: props invalid")
	ErrRenderPanic      = errors.New("widgets: renderer panicked")
)
