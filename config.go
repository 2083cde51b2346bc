package delivery

import "github.com/goliatone/go-delivery/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrPageSizeInvalid         = runtimeconfig.ErrPageSizeInvalid
	ErrMaxPageInvalid          = runtimeconfig.ErrMaxPageInvalid
	ErrHomeKeyRequired         = runtimeconfig.ErrHomeKeyRequired
	ErrLinksBaseURLInvalid     = runtimeconfig.ErrLinksBaseURLInvalid
	ErrRateLimitInvalid        = runtimeconfig.ErrRateLimitInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	StorageConfig    = runtimeconfig.StorageConfig
	CacheConfig      = runtimeconfig.CacheConfig
	PaginationConfig = runtimeconfig.PaginationConfig
	LayoutsConfig    = runtimeconfig.LayoutsConfig
	MarkdownConfig   = runtimeconfig.MarkdownConfig
	LinksConfig      = runtimeconfig.LinksConfig
	ServerConfig     = runtimeconfig.ServerConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
