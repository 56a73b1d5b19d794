package session

import (
	"time"

	"github.com/dmitrymomot/sesskit/pkg/cookie"
)

// Config holds session cookie and store settings
type Config struct {
	// Name of the session cookie (default: "sesskit_session")
	Name string `env:"SESSION_NAME" envDefault:"sesskit_session"`

	// Lifetime of the session cookie. Zero keeps the cookie until the browser closes.
	Lifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"0s"`

	Path   string `env:"SESSION_PATH" envDefault:"/"`
	Domain string `env:"SESSION_DOMAIN"`

	Secure   bool            `env:"SESSION_SECURE" envDefault:"true"`
	HTTPOnly bool            `env:"SESSION_HTTP_ONLY" envDefault:"true"`
	SameSite cookie.SameSite `env:"SESSION_SAME_SITE" envDefault:"lax"`

	// StrictMode refuses identifiers the store does not know about
	StrictMode bool `env:"SESSION_STRICT_MODE" envDefault:"true"`

	// CookieOnly disables the query string fallback for the identifier
	CookieOnly bool `env:"SESSION_COOKIE_ONLY" envDefault:"true"`

	// UseCookies toggles writing the session cookie at all
	UseCookies bool `env:"SESSION_USE_COOKIES" envDefault:"true"`

	// GCMaxLifetime caps the server-side record age. Zero falls back to
	// Lifetime, and to 24h when Lifetime is zero as well.
	GCMaxLifetime time.Duration `env:"SESSION_GC_MAX_LIFETIME" envDefault:"0s"`

	// IdleTimeout expires records not touched for this long (0 to disable)
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"0s"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		Name:       "sesskit_session",
		Path:       "/",
		Secure:     true,
		HTTPOnly:   true,
		SameSite:   cookie.SameSiteLax,
		StrictMode: true,
		CookieOnly: true,
		UseCookies: true,
	}
}

// CookieOptions converts the cookie settings into cookie options.
func (c Config) CookieOptions() []cookie.Option {
	opts := []cookie.Option{
		cookie.WithPath(c.Path),
		cookie.WithDomain(c.Domain),
		cookie.WithSecure(c.Secure),
		cookie.WithHTTPOnly(c.HTTPOnly),
		cookie.WithSameSite(c.SameSite.HTTP()),
	}
	if c.Lifetime > 0 {
		opts = append(opts, cookie.WithMaxAge(int(c.Lifetime/time.Second)))
	}
	return opts
}
