package ingestcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	importLayoutMessageType   = "delivery.ingest.import_layout"
	importArticlesMessageType = "delivery.ingest.import_articles"
	importFeedMessageType     = "delivery.ingest.import_feed"
)

// ImportLayoutCommand loads a layout document, either inline or from Path.
type ImportLayoutCommand struct {
	Path     string `json:"path,omitempty"`
	Document []byte `json:"document,omitempty"`
}

// Type implements command.Message.
func (ImportLayoutCommand) Type() string { return importLayoutMessageType }

// Validate requires exactly one of Path or Document.
func (cmd ImportLayoutCommand) Validate() error {
	hasPath := strings.TrimSpace(cmd.Path) != ""
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.When(len(cmd.Document) == 0, validation.Required.Error("path or document is required"))),
		validation.Field(&cmd.Document, validation.When(hasPath, validation.Empty.Error("set either path or document"))),
	)
}

// ImportArticlesCommand imports every markdown file under Directory.
type ImportArticlesCommand struct {
	Directory string `json:"directory"`
}

// Type implements command.Message.
func (ImportArticlesCommand) Type() string { return importArticlesMessageType }

func (cmd ImportArticlesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(notBlank("directory"))),
	)
}

// ImportFeedCommand imports the items of an RSS, Atom or JSON feed.
type ImportFeedCommand struct {
	Source     string `json:"source"`
	Category   string `json:"category,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	StaffPicks bool   `json:"staff_picks,omitempty"`
}

// Type implements command.Message.
func (ImportFeedCommand) Type() string { return importFeedMessageType }

func (cmd ImportFeedCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Source, validation.Required, validation.By(notBlank("source"))),
		validation.Field(&cmd.Limit, validation.Min(0)),
	)
}

func notBlank(field string) validation.RuleFunc {
	return func(value any) error {
		if s, _ := value.(string); strings.TrimSpace(s) == "" {
			return validation.NewError("delivery.ingest."+field+"_required", field+" is required")
		}
		return nil
	}
}
