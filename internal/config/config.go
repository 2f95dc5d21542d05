// Package config provides centralized configuration management for the application.
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
	Upload   UploadConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Chart    ChartConfig
	Session  SessionConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 0 for SSE)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig holds CSV upload processing settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 10MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrent is the maximum number of parallel file reads (default: 5)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"5"`

	// MaxWaitTime is how long to wait for a read slot (default: 10s)
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"10s"`

	// Timeout is the maximum duration for a single file read (default: 1m)
	Timeout time.Duration `env:"UPLOAD_TIMEOUT" default:"1m"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 600).
	// Hover traffic is not counted against it.
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"600"`

	// UploadLimit is requests per minute for the upload endpoint (default: 20)
	UploadLimit int `env:"RATE_LIMIT_UPLOAD" default:"20"`

	// HoverLimit is requests per minute for tooltip lookups (default: 3000).
	// The page throttles pointer moves to one per 50ms, about 1200 a minute.
	HoverLimit int `env:"RATE_LIMIT_HOVER" default:"3000"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey protects /api routes with X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// ChartConfig holds the entity palette and canvas sizes.
type ChartConfig struct {
	// Entities is the ordered stack (bottom first) as name=#rrggbb pairs.
	Entities []string `env:"CHART_ENTITIES" default:"LLaMA-3.1=#ff7f00,Claude=#984ea3,PaLM-2=#4daf4a,Gemini=#377eb8,GPT-4=#e41a1c"`

	// Width and Height are the streamgraph canvas size in logical pixels.
	Width  int `env:"CHART_WIDTH" default:"800"`
	Height int `env:"CHART_HEIGHT" default:"400"`

	// TooltipWidth and TooltipHeight are the tooltip panel size.
	TooltipWidth  int `env:"CHART_TOOLTIP_WIDTH" default:"150"`
	TooltipHeight int `env:"CHART_TOOLTIP_HEIGHT" default:"100"`
}

// SessionConfig holds in-memory dataset session settings.
type SessionConfig struct {
	// IdleTTL is how long an untouched session keeps its dataset (default: 30m)
	IdleTTL time.Duration `env:"SESSION_IDLE_TTL" default:"30m"`

	// SweepInterval is how often idle sessions are evicted (default: 1m)
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" default:"1m"`

	// CookieSecure sets the Secure flag on the session cookie (default: false)
	CookieSecure bool `env:"SESSION_COOKIE_SECURE" default:"false"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
