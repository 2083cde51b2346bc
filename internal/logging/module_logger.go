package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-delivery/pkg/interfaces"
)

const (
	rootModule        = "delivery"
	compositionModule = "delivery.composition"
	layoutsModule     = "delivery.layouts"
	contextModule     = "delivery.context"
	paginationModule  = "delivery.pagination"
	repositoryModule  = "delivery.repository"
	commandsModule    = "delivery.commands"
	httpModule        = "delivery.http"
)

const (
	fieldPageKey   = "page_key"
	fieldPageKind  = "page_kind"
	fieldDimension = "dimension"
)

// ModuleLogger returns a logger scoped to module. A no-op logger is used
// when provider is nil or yields nothing; the module name is always attached
// as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}

	var logger interfaces.Logger = NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

// CompositionLogger scopes entries emitted by the widget composition engine.
func CompositionLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, compositionModule)
}

func LayoutsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, layoutsModule)
}

func ContextLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contextModule)
}

func PaginationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, paginationModule)
}

func RepositoryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, repositoryModule)
}

func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithPageContext annotates logger with the page key and page kind of the
// render in flight. Blank values are skipped.
func WithPageContext(logger interfaces.Logger, pageKey, kind string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(pageKey); trimmed != "" {
		fields[fieldPageKey] = trimmed
	}
	if trimmed := strings.TrimSpace(kind); trimmed != "" {
		fields[fieldPageKind] = trimmed
	}
	return WithFields(logger, fields)
}

// WithDimension annotates logger with a listing dimension label.
func WithDimension(logger interfaces.Logger, dimension string) interfaces.Logger {
	if strings.TrimSpace(dimension) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldDimension: dimension})
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
