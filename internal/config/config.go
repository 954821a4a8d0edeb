// Package config resolves settings from the process environment.
//
// Values are read from the environment on every access rather than
// cached at startup, so a test that mutates the environment observes the
// change on the next read. The package-level functions delegate to a
// shared Default resolver; both views return the same live values.
package config

import (
	"fmt"
	"os"
	"strings"
)

// DefaultBaseDomain is the fallback used to derive sender and recipient
// addresses when BASE_DOMAIN is unset.
const DefaultBaseDomain = "nordqvist.tech"

// defaults holds the value returned for a setting when the environment
// variable is unset. Settings absent from this table default to "".
var defaults = map[string]string{
	"PORT":                  "8080",
	"LOG_LEVEL":             "info",
	"DB_HOST":               "localhost",
	"DB_PORT":               "5432",
	"DB_SSLMODE":            "disable",
	"BASE_DOMAIN":           DefaultBaseDomain,
	"SESSION_COOKIE_SECURE": "false",
	"MAILER":                "resend",
	"SMTP_PORT":             "465",
	"DIGEST_SCHEDULE":       "0 7 * * *",
}

// required lists the settings Validate refuses to start without.
var required = []string{"SECRET_KEY", "DB_USER", "DB_PASSWORD", "DB_NAME"}

// Config is a read-through accessor over the process environment.
// The zero value is ready to use.
type Config struct{}

// Default is the shared resolver backing the package-level functions.
var Default = &Config{}

// Get returns the current value of the named setting, falling back to
// the documented default when the environment variable is unset.
func (c *Config) Get(name string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return defaults[name]
}

// GetBool interprets the named setting as a boolean ("true", any case).
func (c *Config) GetBool(name string) bool {
	return strings.EqualFold(c.Get(name), "true")
}

// Validate checks that every required setting has a value and returns a
// descriptive error listing the missing ones. Called once at startup so
// the process fails fast instead of erroring on the first request.
func (c *Config) Validate() error {
	var missing []string
	for _, name := range required {
		if c.Get(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// DSN assembles the Postgres connection string from the DB_* settings.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Get("DB_HOST"), c.Get("DB_PORT"), c.Get("DB_USER"), c.Get("DB_PASSWORD"),
		c.Get("DB_NAME"), c.Get("DB_SSLMODE"))
}

// SecretKey returns the session signing key.
func (c *Config) SecretKey() string { return c.Get("SECRET_KEY") }

// BaseDomain returns the site's base domain.
func (c *Config) BaseDomain() string { return c.Get("BASE_DOMAIN") }

// EmailFrom returns the sender address, derived as info@{BASE_DOMAIN}
// unless EMAIL_FROM is set explicitly.
func (c *Config) EmailFrom() string {
	if v := c.Get("EMAIL_FROM"); v != "" {
		return v
	}
	return "info@" + c.BaseDomain()
}

// EmailTo returns the recipient address for contact notifications,
// derived the same way as EmailFrom.
func (c *Config) EmailTo() string {
	if v := c.Get("EMAIL_TO"); v != "" {
		return v
	}
	return "info@" + c.BaseDomain()
}

// CookieSecure reports whether session cookies require a secure transport.
func (c *Config) CookieSecure() bool { return c.GetBool("SESSION_COOKIE_SECURE") }

// Get returns a setting through the shared Default resolver.
func Get(name string) string { return Default.Get(name) }

// GetBool returns a boolean setting through the shared Default resolver.
func GetBool(name string) bool { return Default.GetBool(name) }

// Validate runs startup validation on the shared Default resolver.
func Validate() error { return Default.Validate() }
