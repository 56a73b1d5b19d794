package cookie

import (
	"net/http"

	"github.com/dmitrymomot/sesskit/pkg/httpx"
)

// Middleware attaches a fresh Queue to every request and writes the queued
// cookies right before the response headers are sent.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := NewQueue()
		hw := httpx.NewHookWriter(w, func() { q.WriteTo(w) })
		defer hw.Fire()

		next.ServeHTTP(hw, r.WithContext(WithQueue(r.Context(), q)))
	})
}
