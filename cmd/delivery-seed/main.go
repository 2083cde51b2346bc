package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	delivery "github.com/goliatone/go-delivery"
	ingestcmd "github.com/goliatone/go-delivery/internal/commands/ingest"
)

var moduleBuilder = delivery.New

type options struct {
	ConfigPath   string
	ArticlesDir  string
	FeedSource   string
	FeedCategory string
	FeedLimit    int
	StaffPicks   bool
	Layouts      []string
}

func main() {
	if err := runSeed(context.Background(), os.Args[1:]); err != nil {
		log.Fatalf("delivery seed: %v", err)
	}
}

func parseOptions(args []string) (options, error) {
	fs := flag.NewFlagSet("delivery-seed", flag.ContinueOnError)
	opts := options{}
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&opts.ArticlesDir, "articles", "", "Directory of markdown articles to import")
	fs.StringVar(&opts.FeedSource, "feed", "", "RSS or Atom URL or file to import")
	fs.StringVar(&opts.FeedCategory, "feed-category", "", "Category assigned to every feed item")
	fs.IntVar(&opts.FeedLimit, "feed-limit", 0, "Maximum feed items to import (0 imports all)")
	fs.BoolVar(&opts.StaffPicks, "staff-picks", false, "Mark imported feed items as staff picks")
	layouts := fs.String("layouts", "", "Comma separated layout JSON files")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	for _, path := range strings.Split(*layouts, ",") {
		if path = strings.TrimSpace(path); path != "" {
			opts.Layouts = append(opts.Layouts, path)
		}
	}
	if opts.ArticlesDir == "" && opts.FeedSource == "" && len(opts.Layouts) == 0 {
		return opts, fmt.Errorf("nothing to seed: set -articles, -feed or -layouts")
	}
	return opts, nil
}

func runSeed(ctx context.Context, args []string) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	cfg := delivery.DefaultConfig()
	if opts.ConfigPath != "" {
		if cfg, err = delivery.LoadConfig(opts.ConfigPath); err != nil {
			return err
		}
	}
	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()
	return seed(ctx, module.Commands(), opts)
}

func seed(ctx context.Context, handlers *delivery.IngestCommands, opts options) error {
	if opts.ArticlesDir != "" {
		if err := handlers.Articles.Execute(ctx, ingestcmd.ImportArticlesCommand{Directory: opts.ArticlesDir}); err != nil {
			return err
		}
	}
	if opts.FeedSource != "" {
		if err := handlers.Feed.Execute(ctx, ingestcmd.ImportFeedCommand{
			Source:     opts.FeedSource,
			Category:   opts.FeedCategory,
			Limit:      opts.FeedLimit,
			StaffPicks: opts.StaffPicks,
		}); err != nil {
			return err
		}
	}
	for _, path := range opts.Layouts {
		if err := handlers.Layout.Execute(ctx, ingestcmd.ImportLayoutCommand{Path: path}); err != nil {
			return err
		}
	}
	return nil
}
