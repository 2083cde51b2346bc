package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/goliatone/go-delivery/internal/content"
	"github.com/goliatone/go-delivery/internal/validation"
)

// ImportLayout validates document against the layout schema and saves it.
func (i *Importer) ImportLayout(ctx context.Context, document []byte) (*content.Layout, error) {
	if err := validation.ValidateLayoutDocument(document); err != nil {
		return nil, err
	}
	var layout content.Layout
	if err := json.Unmarshal(document, &layout); err != nil {
		return nil, fmt.Errorf("ingest: decode layout: %w", err)
	}
	saved, err := i.writer.SaveLayout(ctx, &layout)
	if err != nil {
		return nil, err
	}
	i.logger.Info("ingest.layout.saved", "page_key", saved.PageKey, "widgets", len(saved.Widgets), "active", saved.IsActive)
	return saved, nil
}

// ImportLayoutFile reads and imports the layout document at path.
func (i *Importer) ImportLayoutFile(ctx context.Context, path string) (*content.Layout, error) {
	document, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: read layout: %w", err)
	}
	return i.ImportLayout(ctx, document)
}
