package session

import (
	"net/http"

	"github.com/dmitrymomot/sesskit/pkg/httpx"
	"github.com/dmitrymomot/sesskit/pkg/logger"
)

// Middleware starts the session before next runs and saves it on the way
// out. The save runs before the response headers are sent, and again on
// exit so that a panicking handler still persists its changes.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		s, err := m.Load(w, r)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to start session", logger.Error(err))
			m.errorHandler(w, r, err)
			return
		}

		ctx = WithSession(ctx, s)
		r = r.WithContext(ctx)

		var saveErr error
		hw := httpx.NewHookWriter(w, func() {
			saveErr = m.save(ctx, s)
		})
		defer func() {
			hw.Fire()
			if err := m.save(ctx, s); err != nil && saveErr == nil {
				saveErr = err
			}
			if saveErr != nil && !hw.Written() {
				m.errorHandler(w, r, saveErr)
			}
		}()

		next.ServeHTTP(hw, r)
	})
}
