// Package config holds runtime settings for the cursorpool CLI.
//
// Sources are layered: built-in defaults, then a JSON file (-c/-config),
// then environment variables (CURSORPOOL_ prefix), then command-line flags.
// Later sources take precedence.
package config

import (
	"path/filepath"
	"time"
)

type Config struct {
	// BaseURL is scheme://host[:port] of the backend; the /api prefix is
	// appended by the API client.
	BaseURL string

	// RequestTimeout bounds every backend call. It is deliberately long:
	// provisioning a fresh account can take minutes.
	RequestTimeout time.Duration

	// DataDir holds the local sqlite database and the cookie mirror.
	DataDir string

	// CookieFile overrides the path of the Netscape cookie mirror. Empty
	// means DataDir/cookies.txt.
	CookieFile string

	// PageSize is the default per_page for list requests.
	PageSize int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 5 * time.Minute
	c.DataDir = "."
	c.PageSize = 10
}

// CookiePath resolves the cookie mirror location: the explicit CookieFile
// when set, otherwise cookies.txt inside DataDir.
func (c *Config) CookiePath() string {
	if c.CookieFile != "" {
		return c.CookieFile
	}
	return filepath.Join(c.DataDir, "cookies.txt")
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
