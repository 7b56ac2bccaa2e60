package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig maps environment variables onto the overridable settings.
// Empty values mean "not set", so only provided variables overlay the
// current config.
type envConfig struct {
	BaseURL        string        `env:"BASE_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	DataDir        string        `env:"DATA_DIR"`
	CookieFile     string        `env:"COOKIE_FILE"`
	PageSize       int           `env:"PAGE_SIZE"`
}

// parseEnv overlays cfg with CURSORPOOL_-prefixed environment variables,
// e.g. CURSORPOOL_BASE_URL or CURSORPOOL_REQUEST_TIMEOUT=90s.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: "CURSORPOOL_"}); err != nil {
		panic(err)
	}

	if ec.BaseURL != "" {
		cfg.BaseURL = ec.BaseURL
	}
	if ec.RequestTimeout > 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.DataDir != "" {
		cfg.DataDir = ec.DataDir
	}
	if ec.CookieFile != "" {
		cfg.CookieFile = ec.CookieFile
	}
	if ec.PageSize > 0 {
		cfg.PageSize = ec.PageSize
	}
}
