package cookie

import (
	"context"
	"net/http"
)

type queueContextKey struct{}

// WithQueue attaches q to ctx.
func WithQueue(ctx context.Context, q *Queue) context.Context {
	return context.WithValue(ctx, queueContextKey{}, q)
}

// QueueFromContext returns the queue attached by Middleware, if any.
func QueueFromContext(ctx context.Context) (*Queue, bool) {
	if ctx == nil {
		return nil, false
	}
	q, ok := ctx.Value(queueContextKey{}).(*Queue)
	return q, ok && q != nil
}

// Emit queues c when a queue is attached to r, otherwise writes it to w.
func Emit(w http.ResponseWriter, r *http.Request, c *http.Cookie) {
	if q, ok := QueueFromContext(r.Context()); ok {
		q.Add(c)
		return
	}
	http.SetCookie(w, c)
}
