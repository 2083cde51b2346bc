package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/markdown"
)

var markdownExtensions = map[string]bool{".md": true, ".markdown": true}

// ImportDirectory walks dir for markdown files with front matter and saves
// one article per file. Drafts are skipped. The slug defaults to the file
// name and the publish date to the file modification time.
func (i *Importer) ImportDirectory(ctx context.Context, dir string) (*Result, error) {
	result := &Result{}
	seen := map[string]bool{}
	root := os.DirFS(dir)

	err := fs.WalkDir(root, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !markdownExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		article, err := readArticle(root, path, entry)
		if err != nil {
			return fmt.Errorf("ingest: %s: %w", path, err)
		}
		if article == nil {
			i.logger.Debug("ingest.markdown.skipped", "path", path, "reason", "draft")
			result.Skipped = append(result.Skipped, path)
			return nil
		}
		if err := i.saveArticle(ctx, article, result, seen); err != nil {
			return fmt.Errorf("ingest: %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return result, err
	}
	i.logger.Info("ingest.markdown.completed", "directory", dir, "articles", len(result.Articles), "skipped", len(result.Skipped))
	return result, nil
}

// readArticle returns nil for drafts.
func readArticle(root fs.FS, path string, entry fs.DirEntry) (*content.Article, error) {
	source, err := fs.ReadFile(root, path)
	if err != nil {
		return nil, err
	}
	meta, body, err := markdown.ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}
	if meta.Draft {
		return nil, nil
	}

	slug := meta.Slug
	if strings.TrimSpace(slug) == "" {
		slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	published := meta.Date
	if published.IsZero() {
		if info, err := entry.Info(); err == nil {
			published = info.ModTime().UTC().Truncate(time.Second)
		}
	}
	article := &content.Article{
		Slug:         slug,
		Title:        meta.Title,
		Summary:      meta.Summary,
		Body:         strings.TrimSpace(string(body)),
		Author:       meta.Author,
		ImageURL:     meta.Image,
		CategorySlug: meta.Category,
		Tags:         meta.Tags,
		StaffPick:    meta.StaffPick,
		PublishedAt:  published,
	}
	normalizeTaxonomy(article)
	return article, nil
}
