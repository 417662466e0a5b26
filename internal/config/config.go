// Package config provides centralized configuration management for the dashboard.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	View     ViewConfig
	Import   ImportConfig
	Export   ExportConfig
	Data     DataConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// ViewConfig holds the collection view defaults.
type ViewConfig struct {
	// PageSize is the page size of a freshly mounted view (default: 10)
	PageSize int `env:"VIEW_PAGE_SIZE" default:"10"`

	// PageSizeOptions are the page sizes offered to the user (default: 10,20,30,40,50)
	PageSizeOptions []int `env:"VIEW_PAGE_SIZE_OPTIONS" default:"10,20,30,40,50"`

	// SearchThreshold is the fuzzy search strictness, 0 exact to 1 anything (default: 0.3)
	SearchThreshold float64 `env:"VIEW_SEARCH_THRESHOLD" default:"0.3"`

	// PageWindow is how many page links to show either side of the current page (default: 2)
	PageWindow int `env:"VIEW_PAGE_WINDOW" default:"2"`

	// SessionCapacity is how many browser view sessions are kept (default: 1000)
	SessionCapacity int `env:"VIEW_SESSION_CAPACITY" default:"1000"`

	// IndexCacheSize is how many search indexes are cached (default: 32)
	IndexCacheSize int `env:"VIEW_INDEX_CACHE_SIZE" default:"32"`

	// ConfirmTTL is how long a destructive action waits for confirmation (default: 5m)
	ConfirmTTL time.Duration `env:"VIEW_CONFIRM_TTL" default:"5m"`
}

// ImportConfig holds CSV import settings.
type ImportConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 10MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrent is the maximum number of parallel imports (default: 4)
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long to wait for an import slot (default: 10s)
	MaxWaitTime time.Duration `env:"IMPORT_MAX_WAIT_TIME" default:"10s"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	// Filename is the download name without extension (default: export)
	Filename string `env:"EXPORT_FILENAME" default:"export"`

	// Title is the heading of PDF exports (default: Data Export)
	Title string `env:"EXPORT_TITLE" default:"Data Export"`
}

// DataConfig holds the source of the initial data.
type DataConfig struct {
	// SeedFile is a YAML data set replacing the embedded seed (optional)
	SeedFile string `env:"DATA_SEED_FILE"`
}

// RateLimitConfig holds rate limiting settings per client IP.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`

	// Burst is how many requests may arrive at once (default: 50)
	Burst int `env:"RATE_LIMIT_BURST" default:"50"`

	// ExportLimit is requests per minute for export and import endpoints (default: 20)
	ExportLimit int `env:"RATE_LIMIT_EXPORT" default:"20"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// SecureCookies marks the session cookie Secure (default: false)
	SecureCookies bool `env:"SECURITY_SECURE_COOKIES" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
