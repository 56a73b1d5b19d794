package csrf

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/sesskit/pkg/cookie"
	"github.com/dmitrymomot/sesskit/pkg/httpx"
	"github.com/dmitrymomot/sesskit/pkg/logger"
	"github.com/dmitrymomot/sesskit/pkg/session"
)

// Middleware guards next. It expects a session in the request context, so
// it must run inside session.Manager.Middleware. Rejections happen before
// next runs; the sync cookie is attached right before headers are sent.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.IsExcluded(r) {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		sess, ok := session.FromContext(ctx)
		if !ok {
			g.logger.ErrorContext(ctx, "csrf guard mounted without session", logger.Request(r))
			g.errorHandler(w, r, session.ErrNoSession)
			return
		}

		token, err := g.Verify(ctx, r, sess)
		if err != nil {
			if errors.Is(err, ErrTokenMismatch) {
				g.logger.WarnContext(ctx, "csrf token mismatch", logger.Request(r))
			} else {
				g.logger.ErrorContext(ctx, "csrf verification failed", logger.Request(r), logger.Error(err))
			}
			g.errorHandler(w, r, err)
			return
		}

		r = r.WithContext(g.withToken(ctx, token))

		hw := httpx.NewHookWriter(w, func() {
			if c := g.Cookie(r, token); c != nil {
				cookie.Emit(w, r, c)
			}
		})
		defer hw.Fire()

		next.ServeHTTP(hw, r)
	})
}
