package interfaces

import "time"

// MarkdownParser converts Markdown article bodies into HTML.
type MarkdownParser interface {
	Parse(markdown []byte) ([]byte, error)
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing. Option names stay readable for
// configuration files and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
}

// FrontMatter models the metadata block at the top of an article file.
type FrontMatter struct {
	Title     string         `yaml:"title" json:"title"`
	Slug      string         `yaml:"slug" json:"slug"`
	Summary   string         `yaml:"summary" json:"summary"`
	Author    string         `yaml:"author" json:"author"`
	Category  string         `yaml:"category" json:"category"`
	Tags      []string       `yaml:"tags" json:"tags"`
	Image     string         `yaml:"image" json:"image"`
	Date      time.Time      `yaml:"date" json:"date"`
	StaffPick bool           `yaml:"staff_pick" json:"staff_pick"`
	Draft     bool           `yaml:"draft" json:"draft"`
	Custom    map[string]any `yaml:",inline" json:"custom"`
}
