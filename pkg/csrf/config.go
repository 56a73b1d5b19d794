package csrf

import "github.com/dmitrymomot/sesskit/pkg/cookie"

// Config holds CSRF guard settings
type Config struct {
	// SessionKey is the session key holding the token
	SessionKey string `env:"CSRF_SESSION_KEY" envDefault:"csrf_token"`

	// InputKey is the form or JSON field carrying the token
	InputKey string `env:"CSRF_INPUT_KEY" envDefault:"_token"`

	// HeaderName is checked first; X-XSRF-TOKEN and X-CSRF-Token follow
	HeaderName string `env:"CSRF_HEADER_NAME" envDefault:"X-XSRF-TOKEN"`

	// Methods that require a valid token
	Methods []string `env:"CSRF_METHODS" envDefault:"POST,PUT,PATCH,DELETE" envSeparator:","`

	// Rotate issues a new token after every successful verification
	Rotate bool `env:"CSRF_ROTATE" envDefault:"false"`

	// AttributeName is the request context attribute exposing the token
	AttributeName string `env:"CSRF_ATTRIBUTE" envDefault:"csrf_token"`

	// Except lists paths, absolute URLs or globs (with *) skipping the guard
	Except []string `env:"CSRF_EXCEPT" envSeparator:","`

	// CookieName of the sync cookie; empty disables the cookie
	CookieName     string              `env:"CSRF_COOKIE_NAME" envDefault:"XSRF-TOKEN"`
	CookiePath     string              `env:"CSRF_COOKIE_PATH" envDefault:"/"`
	CookieDomain   string              `env:"CSRF_COOKIE_DOMAIN"`
	CookieSameSite cookie.SameSite     `env:"CSRF_COOKIE_SAME_SITE" envDefault:"lax"`
	CookieSecure   cookie.SecurePolicy `env:"CSRF_COOKIE_SECURE" envDefault:"auto"`
	CookieHTTPOnly bool                `env:"CSRF_COOKIE_HTTP_ONLY" envDefault:"false"`

	// MaxBodySize bounds how much of a JSON body is inspected for the token
	MaxBodySize int64 `env:"CSRF_MAX_BODY_SIZE" envDefault:"1048576"`
}

// DefaultConfig returns default CSRF configuration
func DefaultConfig() Config {
	return Config{
		SessionKey:     "csrf_token",
		InputKey:       "_token",
		HeaderName:     "X-XSRF-TOKEN",
		Methods:        []string{"POST", "PUT", "PATCH", "DELETE"},
		AttributeName:  "csrf_token",
		CookieName:     "XSRF-TOKEN",
		CookiePath:     "/",
		CookieSameSite: cookie.SameSiteLax,
		CookieSecure:   cookie.SecureAuto,
		MaxBodySize:    1 << 20,
	}
}
