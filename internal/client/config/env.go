package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var lookupEnv = os.LookupEnv

func loadDotEnv() {
	_ = godotenv.Load()
}

// parseEnv overlays TASKCTL_* variables.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("TASKCTL_API_URL"); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup("TASKCTL_SESSION_SECRET"); ok {
		cfg.SessionSecret = v
	}
	if v, ok := lookup("TASKCTL_SESSION_FILE"); ok {
		cfg.SessionFile = v
	}
	if v, ok := lookup("TASKCTL_SECURE_COOKIES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TASKCTL_SECURE_COOKIES: %w", err)
		}
		cfg.SecureCookies = b
	}
	if v, ok := lookup("TASKCTL_REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TASKCTL_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
