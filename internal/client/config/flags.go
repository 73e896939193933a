package config

import "github.com/spf13/pflag"

// BindFlags registers flags on fs that write straight into c. Call it
// after LoadConfig so flag defaults show the layered values.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.APIBaseURL, "api", "a", c.APIBaseURL, "base URL of the taskhub API")
	fs.DurationVarP(&c.RequestTimeout, "timeout", "t", c.RequestTimeout, "per-request timeout")
	fs.StringVar(&c.SessionFile, "session-file", c.SessionFile, "where the session cookie value is stored")
	fs.BoolVar(&c.SecureCookies, "secure-cookies", c.SecureCookies, "use the __Secure- session cookie")
	fs.StringP("config", "c", "", "path to JSON config file")
}
