package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/idpdocs/catalog"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Issuer is used when a tool call names none.
	Issuer string

	// Catalog defaults.
	UnsupportedMode catalog.UnsupportedMode
	StaticExample   bool

	// Document cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// Output limits.
	MaxInlineSize int
	DefaultLimit  int
	MaxLimit      int

	// Validate tool defaults.
	ValidateStrict     bool
	ValidateNoWarnings bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from IDPDOCS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		Issuer:             os.Getenv("IDPDOCS_ISSUER"),
		UnsupportedMode:    envMode("IDPDOCS_UNSUPPORTED_MODE", catalog.OmitUnsupported),
		StaticExample:      envBool("IDPDOCS_STATIC_EXAMPLE", false),
		CacheEnabled:       envBool("IDPDOCS_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("IDPDOCS_CACHE_MAX_SIZE", 32),
		CacheTTL:           envDuration("IDPDOCS_CACHE_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("IDPDOCS_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      envInt("IDPDOCS_MAX_INLINE_SIZE", 1024*1024),
		DefaultLimit:       envInt("IDPDOCS_LIMIT", 100),
		MaxLimit:           envInt("IDPDOCS_MAX_LIMIT", 1000),
		ValidateStrict:     envBool("IDPDOCS_VALIDATE_STRICT", false),
		ValidateNoWarnings: envBool("IDPDOCS_VALIDATE_NO_WARNINGS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func envMode(key string, fallback catalog.UnsupportedMode) catalog.UnsupportedMode {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	mode, ok := catalog.ParseUnsupportedMode(v)
	if !ok {
		slog.Warn("invalid unsupported mode env var, using default", "key", key, "value", v, "default", fallback.String())
		return fallback
	}
	return mode
}
