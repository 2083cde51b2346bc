package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrStorageProviderUnknown = errors.New("delivery config: storage provider is invalid")
var ErrStorageDSNRequired = errors.New("delivery config: storage dsn is required for sql providers")
var ErrCacheTTLInvalid = errors.New("delivery config: cache ttl must be positive when cache is enabled")
var ErrPageSizeInvalid = errors.New("delivery config: page size must be zero or positive")
var ErrMaxPageInvalid = errors.New("delivery config: max page must be zero or positive")
var ErrHomeKeyRequired = errors.New("delivery config: home layout key is required")
var ErrLinksBaseURLInvalid = errors.New("delivery config: links base url must be absolute")
var ErrRateLimitInvalid = errors.New("delivery config: rate limit and burst must be zero or positive")
var ErrLoggingProviderRequired = errors.New("delivery config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("delivery config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("delivery config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("delivery config: logging format is invalid")

// DefaultPageSize is the page size used by every listing dimension without
// an explicit override.
const DefaultPageSize = 10

// Listing dimension names used as PageSizes keys.
const (
	DimensionChronological = "chronological"
	DimensionCategory      = "category"
	DimensionTag           = "tag"
)

// Config aggregates the settings for the delivery runtime. Field names double
// as YAML keys so deployments can override defaults from a file.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	Cache      CacheConfig      `yaml:"cache"`
	Pagination PaginationConfig `yaml:"pagination"`
	Layouts    LayoutsConfig    `yaml:"layouts"`
	Markdown   MarkdownConfig   `yaml:"markdown"`
	Links      LinksConfig      `yaml:"links"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// StorageConfig selects the content repository adapter.
type StorageConfig struct {
	Provider string `yaml:"provider"`
	DSN      string `yaml:"dsn"`
}

// CacheConfig toggles the repository read-through cache. It stays off unless
// a deployment opts in, so editorial changes are visible on the next request.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// PaginationConfig sizes listing windows per dimension.
type PaginationConfig struct {
	DefaultPageSize int            `yaml:"default_page_size"`
	PageSizes       map[string]int `yaml:"page_sizes"`
	// MaxPage clamps requested pages; zero leaves them unbounded.
	MaxPage int `yaml:"max_page"`
}

// PageSize returns the configured size for dimension, falling back to
// DefaultPageSize and then to the package default.
func (p PaginationConfig) PageSize(dimension string) int {
	if size, ok := p.PageSizes[strings.ToLower(strings.TrimSpace(dimension))]; ok && size > 0 {
		return size
	}
	if p.DefaultPageSize > 0 {
		return p.DefaultPageSize
	}
	return DefaultPageSize
}

type LayoutsConfig struct {
	HomeKey string `yaml:"home_key"`
}

// MarkdownConfig carries goldmark options for article bodies.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
}

// LinksConfig feeds the go-urlkit route manager used for permalinks.
type LinksConfig struct {
	BaseURL      string `yaml:"base_url"`
	ArticlePath  string `yaml:"article_path"`
	CategoryPath string `yaml:"category_path"`
	TagPath      string `yaml:"tag_path"`
	PagePath     string `yaml:"page_path"`
	FeedPath     string `yaml:"feed_path"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
	// RateLimit is requests per second across all routes; zero disables it.
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
}

// LoggingConfig captures provider specific logging options.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the settings used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Pagination: PaginationConfig{
			DefaultPageSize: DefaultPageSize,
			PageSizes:       map[string]int{},
		},
		Layouts: LayoutsConfig{
			HomeKey: "home",
		},
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm", "linkify"},
		},
		Links: LinksConfig{
			BaseURL:      "http://localhost:8080",
			ArticlePath:  "/articles/:slug",
			CategoryPath: "/categories/:slug",
			TagPath:      "/tags/:slug",
			PagePath:     "/pages/:slug",
			FeedPath:     "/articles",
		},
		Server: ServerConfig{
			Address:   ":8080",
			RateLimit: 50,
			Burst:     100,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// LoadFile overlays the YAML document at path onto DefaultConfig and
// validates the result.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("delivery config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("delivery config: decode %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate performs consistency checks across sections.
func (cfg Config) Validate() error {
	provider := NormalizeProvider(cfg.Storage.Provider)
	switch provider {
	case "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, provider)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Pagination.DefaultPageSize < 0 {
		return fmt.Errorf("%w: default", ErrPageSizeInvalid)
	}
	for dimension, size := range cfg.Pagination.PageSizes {
		if size < 0 {
			return fmt.Errorf("%w: %s", ErrPageSizeInvalid, dimension)
		}
	}
	if cfg.Pagination.MaxPage < 0 {
		return ErrMaxPageInvalid
	}
	if strings.TrimSpace(cfg.Layouts.HomeKey) == "" {
		return ErrHomeKeyRequired
	}
	if base := strings.TrimSpace(cfg.Links.BaseURL); base != "" &&
		!strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return fmt.Errorf("%w: %s", ErrLinksBaseURLInvalid, base)
	}
	if cfg.Server.RateLimit < 0 || cfg.Server.Burst < 0 {
		return ErrRateLimitInvalid
	}

	logging := NormalizeProvider(cfg.Logging.Provider)
	if logging == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedLoggingProvider(logging) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logging)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if logging == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// NormalizeProvider lower-cases and trims a provider name.
func NormalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedLoggingProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
