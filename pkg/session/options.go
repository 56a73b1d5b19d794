package session

import (
	"log/slog"
	"net/http"
)

// ErrorHandler renders errors raised by the session middleware.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithProvider sets the store provider used to open a store per request
func WithProvider(p Provider) Option {
	return func(m *Manager) {
		if p != nil {
			m.provider = p
		}
	}
}

// WithStore shares a single store across every request
func WithStore(store Store) Option {
	return func(m *Manager) {
		if store != nil {
			m.provider = Shared(store)
		}
	}
}

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithErrorHandler sets the handler rendering start failures
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Manager) {
		if h != nil {
			m.errorHandler = h
		}
	}
}
