package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the Server.
type Option func(*settings)

// WithAddr sets the listen address. ":0" picks a free port; see Server.Addr.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: empty addr")
	}
	return func(s *settings) { s.addr = addr }
}

// WithReadHeaderTimeout limits how long reading request headers may take.
func WithReadHeaderTimeout(d time.Duration) Option {
	return func(s *settings) { s.readHeaderTimeout = d }
}

// WithReadTimeout limits reading the entire request.
func WithReadTimeout(d time.Duration) Option {
	return func(s *settings) { s.readTimeout = d }
}

// WithWriteTimeout limits writing the response.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *settings) { s.writeTimeout = d }
}

// WithIdleTimeout limits keep-alive idle time.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *settings) { s.idleTimeout = d }
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: shutdown timeout must be > 0")
	}
	return func(s *settings) { s.shutdownTimeout = d }
}

// WithLogger sets the server logger. Logs are discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOnShutdown registers a callback run after the server stopped
// accepting requests, e.g. closing a session backend.
func WithOnShutdown(fn func()) Option {
	return func(s *settings) {
		if fn != nil {
			s.onShutdown = append(s.onShutdown, fn)
		}
	}
}
