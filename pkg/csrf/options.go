package csrf

import (
	"io"
	"log/slog"
	"net/http"
)

// ErrorHandler renders rejected requests.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures a Guard.
type Option func(*Guard)

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithErrorHandler replaces the default 419/500 renderer.
func WithErrorHandler(h ErrorHandler) Option {
	return func(g *Guard) {
		if h != nil {
			g.errorHandler = h
		}
	}
}

// WithRandom sets the entropy source for tokens.
func WithRandom(r io.Reader) Option {
	return func(g *Guard) {
		if r != nil {
			g.random = r
		}
	}
}
