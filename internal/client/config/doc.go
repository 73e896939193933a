// Package config loads runtime configuration for the taskctl CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file and TASKCTL_* environment variables.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, bound by the cli package through BindFlags.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "24h" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "request_timeout": "10s",
//	  "session_secret": "change-me",
//	  "session_max_age": "720h",
//	  "session_update_age": "24h",
//	  "secure_cookies": false,
//	  "session_file": "/home/me/.taskctl/session"
//	}
package config
