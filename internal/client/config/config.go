package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the taskctl CLI.
type Config struct {
	APIBaseURL       string
	RequestTimeout   time.Duration
	SessionSecret    string
	SessionMaxAge    time.Duration
	SessionUpdateAge time.Duration
	SecureCookies    bool
	SessionFile      string
}

// LoadDefaults populates c with development defaults. SessionSecret stays
// empty and must come from the environment or a file.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
	c.SessionMaxAge = 30 * 24 * time.Hour
	c.SessionUpdateAge = 24 * time.Hour
	c.SessionFile = defaultSessionFile()
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskctl-session"
	}
	return filepath.Join(home, ".taskctl", "session")
}

// Validate reports settings the client cannot run without.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("config: api base url is empty")
	}
	if c.SessionSecret == "" {
		return errors.New("config: session secret is empty")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("config: request timeout must be positive")
	}
	if c.SessionMaxAge <= 0 || c.SessionUpdateAge <= 0 {
		return errors.New("config: session ages must be positive")
	}
	return nil
}

// LoadConfig applies defaults, the environment and the JSON file. Flags
// are layered on afterwards by the caller.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv()
	if err := parseEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
