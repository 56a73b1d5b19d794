package native

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/dmitrymomot/sesskit/pkg/logger"
	"github.com/dmitrymomot/sesskit/pkg/session"
)

const (
	defaultRecordLifetime = 24 * time.Hour
	tokenLength           = 43
	maxLooseTokenLength   = 128
)

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// Provider opens request-bound stores sharing one scs session manager.
type Provider struct {
	cfg     session.Config
	manager *scs.SessionManager
	logger  *slog.Logger
}

var _ session.Provider = (*Provider)(nil)

// NewProvider creates a Provider persisting records in store.
// Records live for cfg.GCMaxLifetime, else cfg.Lifetime, else 24 hours.
func NewProvider(cfg session.Config, store scs.Store, opts ...Option) *Provider {
	m := scs.New()
	m.Store = store
	m.IdleTimeout = cfg.IdleTimeout
	switch {
	case cfg.GCMaxLifetime > 0:
		m.Lifetime = cfg.GCMaxLifetime
	case cfg.Lifetime > 0:
		m.Lifetime = cfg.Lifetime
	default:
		m.Lifetime = defaultRecordLifetime
	}

	p := &Provider{
		cfg:     cfg,
		manager: m,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(logger.Component("session.native"))
	return p
}

// RecordLifetime returns how long a server-side record lives after its last commit.
func (p *Provider) RecordLifetime() time.Duration {
	return p.manager.Lifetime
}

// Open returns an unstarted Store bound to the request.
func (p *Provider) Open(w http.ResponseWriter, r *http.Request) session.Store {
	return &Store{
		provider: p,
		w:        w,
		r:        r,
		token:    p.requestToken(r),
	}
}

// requestToken extracts the identifier sent by the client.
// Malformed values are dropped before they reach the backend.
func (p *Provider) requestToken(r *http.Request) string {
	var token string
	if p.cfg.UseCookies {
		if c, err := r.Cookie(p.cfg.Name); err == nil {
			token = c.Value
		}
	}
	if token == "" && !p.cfg.CookieOnly {
		token = r.URL.Query().Get(p.cfg.Name)
	}
	if token == "" {
		return ""
	}
	if !validToken(token, p.cfg.StrictMode) {
		p.logger.DebugContext(r.Context(), "malformed session id dropped", logger.Request(r))
		return ""
	}
	return token
}

// validToken accepts scs tokens (43 base64url characters) in strict mode,
// and any short run of [A-Za-z0-9,_-] otherwise.
func validToken(token string, strict bool) bool {
	if strict && len(token) != tokenLength {
		return false
	}
	if len(token) == 0 || len(token) > maxLooseTokenLength {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		case c == ',' && !strict:
		default:
			return false
		}
	}
	return true
}
