package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
)

type sessionContextKey struct{}

// WithSession adds a session to the context
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// FromContext retrieves a session from the context
func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*Session)
	return session, ok && session != nil
}

// MustFromContext retrieves a session from the context or panics
func MustFromContext(ctx context.Context) *Session {
	session, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoSession)
	}
	return session
}

// LogExtractor returns a logger context extractor adding a short hash of
// the session identifier under "session". Raw identifiers never reach logs.
func LogExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		s, ok := FromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		id := s.ID()
		if id == "" {
			return slog.Attr{}, false
		}
		sum := sha256.Sum256([]byte(id))
		return slog.String("session", hex.EncodeToString(sum[:6])), true
	}
}
