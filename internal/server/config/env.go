package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var lookupEnv = os.LookupEnv

// loadDotEnv imports a .env file from the working directory if present.
// Variables already set in the process environment win.
func loadDotEnv() {
	_ = godotenv.Load()
}

// parseEnv overlays TASKHUB_* variables.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("TASKHUB_HTTP_ADDR"); ok {
		cfg.HTTPAddr = v
	}
	if v, ok := lookup("TASKHUB_DATABASE_DSN"); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := lookup("TASKHUB_SECRET_KEY"); ok {
		cfg.SecretKey = v
	}
	if v, ok := lookup("TASKHUB_LOG_BACKEND"); ok {
		cfg.LogBackend = v
	}
	if v, ok := lookup("TASKHUB_CORS_ORIGINS"); ok {
		cfg.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup("TASKHUB_SECURE_COOKIES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TASKHUB_SECURE_COOKIES: %w", err)
		}
		cfg.SecureCookies = b
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"TASKHUB_ACCESS_TOKEN_TTL", &cfg.AccessTokenValidityDuration},
		{"TASKHUB_REFRESH_TOKEN_TTL", &cfg.RefreshTokenValidityDuration},
		{"TASKHUB_SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v, ok := lookup(d.key)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
