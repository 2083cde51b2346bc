package widgets

import (
	"context"
	"fmt"
	"maps"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/logging"
	"github.com/goliatone/go-delivery/pkg/interfaces"
)

// SliceSource supplies bound content slices. *pagecontext.Context satisfies it.
type SliceSource interface {
	Slice(name Slice) (any, bool)
}

// Engine composes layouts into rendered widget sequences.
type Engine struct {
	registry *Registry
	logger   interfaces.Logger
}

type EngineOption func(*Engine)

func WithLogger(logger interfaces.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func NewEngine(registry *Registry, opts ...EngineOption) *Engine {
	if registry == nil {
		registry = NewRegistry()
	}
	engine := &Engine{registry: registry, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(engine)
		}
	}
	return engine
}

// Registry exposes the registry so hosts can add renderers after construction.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Render walks nodes in order and renders each against source. Unknown types
// are skipped and failing widgets are dropped, so Render never fails; the
// result preserves the relative order of the nodes that rendered.
func (e *Engine) Render(ctx context.Context, nodes []content.WidgetNode, source SliceSource) []RenderedWidget {
	rendered := make([]RenderedWidget, 0, len(nodes))
	for position, node := range nodes {
		registration, ok := e.registry.Lookup(node.Type)
		if !ok {
			e.logger.Debug("widget.type.unknown", "widget_type", node.Type, "position", position)
			continue
		}

		data, err := renderIsolated(ctx, registration, node.Props, source)
		if err != nil {
			e.logger.Error("widget.render.failed", "widget_type", node.Type, "position", position, "error", err)
			continue
		}
		rendered = append(rendered, RenderedWidget{
			Type:     canonicalKey(node.Type),
			Position: position,
			Data:     data,
		})
	}
	return rendered
}

// bindProps copies declared props and fills each bound key the layout did
// not declare from source.
func bindProps(declared map[string]any, bindings map[string]Slice, source SliceSource) Props {
	props := make(Props, len(declared)+len(bindings))
	maps.Copy(props, declared)
	if source == nil {
		return props
	}
	for key, slice := range bindings {
		if _, exists := props[key]; exists {
			continue
		}
		if value, ok := source.Slice(slice); ok {
			props[key] = value
		}
	}
	return props
}

// renderIsolated binds and renders one node. A panic in either step fails
// only this widget.
func renderIsolated(ctx context.Context, registration Registration, declared map[string]any, source SliceSource) (data any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			data = nil
			err = fmt.Errorf("%w: %v", ErrRenderPanic, rec)
		}
	}()
	props := bindProps(declared, registration.Bindings, source)
	return registration.Renderer.Render(ctx, props)
}
