package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/taskhub/internal/flagx"
)

// parseFlags overlays the short command-line flags:
//
//	-a string     HTTP listen address (e.g. ":8080")
//	-d string     PostgreSQL DSN
//	-s string     JWT signing key
//	-t duration   access token validity (e.g. "24h")
//	-r duration   refresh token validity
//	-l string     log backend: slog or zap
//	-secure       mark cookies Secure
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-r", "-l", "-secure"})

	fs := flag.NewFlagSet("taskhub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "address and port to listen on")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "token signing key")
	fs.DurationVar(&cfg.AccessTokenValidityDuration, "t", cfg.AccessTokenValidityDuration, "access token validity")
	fs.DurationVar(&cfg.RefreshTokenValidityDuration, "r", cfg.RefreshTokenValidityDuration, "refresh token validity")
	fs.StringVar(&cfg.LogBackend, "l", cfg.LogBackend, "log backend (slog|zap)")
	fs.BoolVar(&cfg.SecureCookies, "secure", cfg.SecureCookies, "set the Secure attribute on cookies")

	return fs.Parse(args)
}
