package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskhub/internal/flagx"
	"github.com/dmitrijs2005/taskhub/internal/timex"
)

// JsonConfig is the on-disk shape; absent fields leave Config untouched.
type JsonConfig struct {
	APIBaseURL       *string         `json:"api_base_url"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
	SessionSecret    *string         `json:"session_secret"`
	SessionMaxAge    *timex.Duration `json:"session_max_age"`
	SessionUpdateAge *timex.Duration `json:"session_update_age"`
	SecureCookies    *bool           `json:"secure_cookies"`
	SessionFile      *string         `json:"session_file"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionSecret != nil {
		cfg.SessionSecret = *jc.SessionSecret
	}
	if jc.SessionMaxAge != nil {
		cfg.SessionMaxAge = jc.SessionMaxAge.Duration
	}
	if jc.SessionUpdateAge != nil {
		cfg.SessionUpdateAge = jc.SessionUpdateAge.Duration
	}
	if jc.SecureCookies != nil {
		cfg.SecureCookies = *jc.SecureCookies
	}
	if jc.SessionFile != nil {
		cfg.SessionFile = *jc.SessionFile
	}
	return nil
}
