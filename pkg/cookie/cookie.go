package cookie

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// New builds a cookie from the package defaults overridden by opts.
// A positive MaxAge also sets Expires for older user agents.
func New(name, value string, opts ...Option) *http.Cookie {
	options := applyOptions(defaultOptions(), opts)

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}
	if options.MaxAge > 0 {
		c.Expires = time.Now().Add(time.Duration(options.MaxAge) * time.Second)
	}
	return c
}

// Expired builds a cookie that instructs the client to drop name.
func Expired(name string, opts ...Option) *http.Cookie {
	c := New(name, "", opts...)
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}

// SameSite wraps http.SameSite with text (env) decoding.
type SameSite http.SameSite

const (
	SameSiteDefault = SameSite(http.SameSiteDefaultMode)
	SameSiteLax     = SameSite(http.SameSiteLaxMode)
	SameSiteStrict  = SameSite(http.SameSiteStrictMode)
	SameSiteNone    = SameSite(http.SameSiteNoneMode)
)

// HTTP returns the net/http representation.
func (s SameSite) HTTP() http.SameSite {
	return http.SameSite(s)
}

func (s SameSite) String() string {
	switch s {
	case SameSiteLax:
		return "lax"
	case SameSiteStrict:
		return "strict"
	case SameSiteNone:
		return "none"
	default:
		return "default"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SameSite) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "lax", "2":
		*s = SameSiteLax
	case "strict", "3":
		*s = SameSiteStrict
	case "none", "4":
		*s = SameSiteNone
	case "", "default", "1":
		*s = SameSiteDefault
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSameSite, string(text))
	}
	return nil
}

// SecurePolicy decides the Secure attribute of a cookie.
type SecurePolicy int

const (
	// SecureAuto marks the cookie secure only for HTTPS requests.
	SecureAuto SecurePolicy = iota
	SecureAlways
	SecureNever
)

// Resolve returns the Secure flag for r.
func (p SecurePolicy) Resolve(r *http.Request) bool {
	switch p {
	case SecureAlways:
		return true
	case SecureNever:
		return false
	default:
		return IsHTTPS(r)
	}
}

func (p SecurePolicy) String() string {
	switch p {
	case SecureAlways:
		return "true"
	case SecureNever:
		return "false"
	default:
		return "auto"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *SecurePolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "auto":
		*p = SecureAuto
	case "true", "1", "yes", "on":
		*p = SecureAlways
	case "false", "0", "no", "off":
		*p = SecureNever
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSecurePolicy, string(text))
	}
	return nil
}

// IsHTTPS reports whether r arrived over HTTPS, either through a TLS
// connection or because the request URL carries the https scheme.
func IsHTTPS(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.URL != nil && r.URL.Scheme != "" {
		return strings.EqualFold(r.URL.Scheme, "https")
	}
	return r.TLS != nil
}
