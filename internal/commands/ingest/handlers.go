package ingestcmd

import (
	"context"
	"fmt"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-delivery/internal/commands"
	"github.com/goliatone/go-delivery/internal/ingest"
	"github.com/goliatone/go-delivery/internal/logging"
	"github.com/goliatone/go-delivery/pkg/interfaces"
)

const (
	layoutOperation   = "ingest.import_layout"
	articlesOperation = "ingest.import_articles"
	feedOperation     = "ingest.import_feed"
)

var (
	_ command.Commander[ImportLayoutCommand]   = (*ImportLayoutHandler)(nil)
	_ command.Commander[ImportArticlesCommand] = (*ImportArticlesHandler)(nil)
	_ command.Commander[ImportFeedCommand]     = (*ImportFeedHandler)(nil)
)

// ImportLayoutHandler validates and stores layout documents.
type ImportLayoutHandler struct {
	inner *commands.Handler[ImportLayoutCommand]
}

func NewImportLayoutHandler(importer *ingest.Importer, logger interfaces.Logger, opts ...commands.HandlerOption[ImportLayoutCommand]) *ImportLayoutHandler {
	logger = logging.Ensure(logger)
	exec := func(ctx context.Context, msg ImportLayoutCommand) error {
		var err error
		if msg.Path != "" {
			_, err = importer.ImportLayoutFile(ctx, msg.Path)
		} else {
			_, err = importer.ImportLayout(ctx, msg.Document)
		}
		return err
	}
	handlerOpts := []commands.HandlerOption[ImportLayoutCommand]{
		commands.WithLogger[ImportLayoutCommand](logger),
		commands.WithOperation[ImportLayoutCommand](layoutOperation),
		commands.WithMessageFields(func(msg ImportLayoutCommand) map[string]any {
			if msg.Path != "" {
				return map[string]any{"path": msg.Path}
			}
			return map[string]any{"document_bytes": len(msg.Document)}
		}),
	}
	return &ImportLayoutHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ImportLayoutCommand].
func (h *ImportLayoutHandler) Execute(ctx context.Context, msg ImportLayoutCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportArticlesHandler imports markdown article directories.
type ImportArticlesHandler struct {
	inner *commands.Handler[ImportArticlesCommand]
}

func NewImportArticlesHandler(importer *ingest.Importer, logger interfaces.Logger, opts ...commands.HandlerOption[ImportArticlesCommand]) *ImportArticlesHandler {
	logger = logging.Ensure(logger)
	exec := func(ctx context.Context, msg ImportArticlesCommand) error {
		result, err := importer.ImportDirectory(ctx, msg.Directory)
		if err != nil {
			return err
		}
		logResult(logger, "ingest.command.import_articles.completed", result)
		return nil
	}
	handlerOpts := []commands.HandlerOption[ImportArticlesCommand]{
		commands.WithLogger[ImportArticlesCommand](logger),
		commands.WithOperation[ImportArticlesCommand](articlesOperation),
		commands.WithMessageFields(func(msg ImportArticlesCommand) map[string]any {
			return map[string]any{"directory": msg.Directory}
		}),
	}
	return &ImportArticlesHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ImportArticlesCommand].
func (h *ImportArticlesHandler) Execute(ctx context.Context, msg ImportArticlesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportFeedHandler imports syndicated feeds.
type ImportFeedHandler struct {
	inner *commands.Handler[ImportFeedCommand]
}

func NewImportFeedHandler(importer *ingest.Importer, logger interfaces.Logger, opts ...commands.HandlerOption[ImportFeedCommand]) *ImportFeedHandler {
	logger = logging.Ensure(logger)
	exec := func(ctx context.Context, msg ImportFeedCommand) error {
		result, err := importer.ImportFeed(ctx, msg.Source, ingest.FeedOptions{
			Category:   msg.Category,
			Limit:      msg.Limit,
			StaffPicks: msg.StaffPicks,
		})
		if err != nil {
			return err
		}
		logResult(logger, "ingest.command.import_feed.completed", result)
		return nil
	}
	handlerOpts := []commands.HandlerOption[ImportFeedCommand]{
		commands.WithLogger[ImportFeedCommand](logger),
		commands.WithOperation[ImportFeedCommand](feedOperation),
		commands.WithMessageFields(func(msg ImportFeedCommand) map[string]any {
			fields := map[string]any{"source": msg.Source}
			if msg.Category != "" {
				fields["category"] = msg.Category
			}
			if msg.Limit > 0 {
				fields["limit"] = msg.Limit
			}
			return fields
		}),
	}
	return &ImportFeedHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ImportFeedCommand].
func (h *ImportFeedHandler) Execute(ctx context.Context, msg ImportFeedCommand) error {
	return h.inner.Execute(ctx, msg)
}

func logResult(logger interfaces.Logger, event string, result *ingest.Result) {
	if result == nil {
		return
	}
	logging.WithFields(logger, map[string]any{
		"article_count":  len(result.Articles),
		"category_count": len(result.Categories),
		"tag_count":      len(result.Tags),
		"skipped_count":  len(result.Skipped),
	}).Info(event)
}

// HandlerSet groups the ingest handlers built by RegisterIngestCommands.
type HandlerSet struct {
	Layout   *ImportLayoutHandler
	Articles *ImportArticlesHandler
	Feed     *ImportFeedHandler
}

// CommandRegistry is the registration contract of go-command registries.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// RegisterIngestCommands builds the ingest handlers and registers them with
// reg when one is supplied.
func RegisterIngestCommands(reg CommandRegistry, importer *ingest.Importer, provider interfaces.LoggerProvider) (*HandlerSet, error) {
	if importer == nil {
		return nil, fmt.Errorf("ingest command registration: %w", ingest.ErrWriterRequired)
	}
	logger := commands.CommandLogger(provider, "ingest")
	set := &HandlerSet{
		Layout:   NewImportLayoutHandler(importer, logger),
		Articles: NewImportArticlesHandler(importer, logger),
		Feed:     NewImportFeedHandler(importer, logger),
	}
	if reg != nil {
		for _, handler := range []any{set.Layout, set.Articles, set.Feed} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
