package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/zoowayss/cursorpool/internal/flagx"
	"github.com/zoowayss/cursorpool/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the timeout can be written either as a string like "5m"
// or as integer nanoseconds.
type jsonConfig struct {
	BaseURL        *string         `json:"base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DataDir        *string         `json:"data_dir"`
	CookieFile     *string         `json:"cookie_file"`
	PageSize       *int            `json:"page_size"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c/-config flags. Absent file path means no JSON layer; only fields
// present in the file are overlaid. Read or unmarshal errors panic, to be
// caught (or not) by the caller.
func parseJSON(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != nil {
		cfg.BaseURL = *jc.BaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.CookieFile != nil {
		cfg.CookieFile = *jc.CookieFile
	}
	if jc.PageSize != nil {
		cfg.PageSize = *jc.PageSize
	}
}
