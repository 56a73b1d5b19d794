package csrf

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/sesskit/core"
	"github.com/dmitrymomot/sesskit/pkg/cookie"
	"github.com/dmitrymomot/sesskit/pkg/logger"
	"github.com/dmitrymomot/sesskit/pkg/session"
)

const tokenBytes = 32

// Guard issues and verifies anti-forgery tokens stored in the session.
// A Guard is immutable and safe for concurrent use.
type Guard struct {
	cfg          Config
	methods      map[string]struct{}
	patterns     []pattern
	logger       *slog.Logger
	errorHandler ErrorHandler
	random       io.Reader
}

// New builds a Guard. Blank fields of cfg fall back to DefaultConfig,
// except CookieName, where empty disables the sync cookie.
func New(cfg Config, opts ...Option) (*Guard, error) {
	def := DefaultConfig()
	if strings.TrimSpace(cfg.SessionKey) == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("session key is required"))
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = def.HeaderName
	}
	if cfg.AttributeName == "" {
		cfg.AttributeName = def.AttributeName
	}
	if len(cfg.Methods) == 0 {
		cfg.Methods = def.Methods
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = def.MaxBodySize
	}

	methods := make(map[string]struct{}, len(cfg.Methods))
	for _, m := range cfg.Methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" {
			return nil, errors.Join(ErrInvalidConfig, errors.New("empty method"))
		}
		methods[m] = struct{}{}
	}

	g := &Guard{
		cfg:          cfg,
		methods:      methods,
		patterns:     compilePatterns(cfg.Except),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		errorHandler: defaultErrorHandler,
		random:       rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With(logger.Component("csrf"))
	return g, nil
}

// Except returns a copy of the guard with additional exclusion patterns.
// The receiver is left unchanged.
func (g *Guard) Except(patterns ...string) *Guard {
	clone := *g
	clone.cfg.Except = append(slices.Clone(g.cfg.Except), patterns...)
	clone.patterns = append(slices.Clone(g.patterns), compilePatterns(patterns)...)
	return &clone
}

// IsExcluded reports whether r matches an exclusion pattern.
func (g *Guard) IsExcluded(r *http.Request) bool {
	if len(g.patterns) == 0 {
		return false
	}

	var full string
	for _, p := range g.patterns {
		value := r.URL.Path
		if p.absolute {
			if full == "" {
				full = fullURL(r)
			}
			value = full
		}
		if p.match(value) {
			return true
		}
	}
	return false
}

// Verify starts sess, makes sure it holds a token and, for guarded methods,
// compares it with the token presented by the client in constant time.
// It returns the token handlers should expose, rotated when configured.
// Exclusions are not consulted; see IsExcluded.
func (g *Guard) Verify(ctx context.Context, r *http.Request, sess *session.Session) (string, error) {
	if err := sess.Start(ctx); err != nil {
		return "", err
	}

	token, err := g.ensureToken(sess)
	if err != nil {
		return "", err
	}

	if _, guarded := g.methods[strings.ToUpper(r.Method)]; !guarded {
		return token, nil
	}

	provided, ok := g.extract(r)
	if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(provided)) != 1 {
		return token, ErrTokenMismatch
	}

	if g.cfg.Rotate {
		if token, err = g.generate(); err != nil {
			return "", err
		}
		sess.Set(g.cfg.SessionKey, token)
	}
	return token, nil
}

// Cookie builds the sync cookie carrying token, or nil when disabled.
// Secure follows the request scheme unless the policy forces it.
func (g *Guard) Cookie(r *http.Request, token string) *http.Cookie {
	if g.cfg.CookieName == "" {
		return nil
	}
	return cookie.New(g.cfg.CookieName, token,
		cookie.WithPath(g.cfg.CookiePath),
		cookie.WithDomain(g.cfg.CookieDomain),
		cookie.WithHTTPOnly(g.cfg.CookieHTTPOnly),
		cookie.WithSameSite(g.cfg.CookieSameSite.HTTP()),
		cookie.WithSecure(g.cfg.CookieSecure.Resolve(r)),
	)
}

func (g *Guard) ensureToken(sess *session.Session) (string, error) {
	if token, ok := sess.GetString(g.cfg.SessionKey); ok && token != "" {
		return token, nil
	}
	token, err := g.generate()
	if err != nil {
		return "", err
	}
	sess.Set(g.cfg.SessionKey, token)
	return token, nil
}

func (g *Guard) generate() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := io.ReadFull(g.random, b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return hex.EncodeToString(b), nil
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is(err, ErrTokenMismatch) {
		err = errors.Join(core.ErrInternalServerError, err)
	}
	core.WriteError(w, r, err)
}
