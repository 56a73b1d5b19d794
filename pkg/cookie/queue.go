package cookie

import (
	"net/http"
	"sync"
)

// Queue collects cookies destined for a single response.
// It is safe for concurrent use.
type Queue struct {
	mu      sync.Mutex
	cookies []*http.Cookie
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Add queues c. A later cookie with the same name, path and domain replaces
// the earlier one so the response never carries conflicting values.
func (q *Queue) Add(c *http.Cookie) {
	if c == nil || c.Name == "" {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for i, existing := range q.cookies {
		if existing.Name == c.Name && existing.Path == c.Path && existing.Domain == c.Domain {
			q.cookies[i] = c
			return
		}
	}
	q.cookies = append(q.cookies, c)
}

// Len returns the number of queued cookies.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.cookies)
}

// Flush returns the queued cookies and empties the queue.
func (q *Queue) Flush() []*http.Cookie {
	q.mu.Lock()
	defer q.mu.Unlock()

	cookies := q.cookies
	q.cookies = nil
	return cookies
}

// WriteTo flushes the queue into Set-Cookie headers on w.
func (q *Queue) WriteTo(w http.ResponseWriter) int {
	cookies := q.Flush()
	for _, c := range cookies {
		http.SetCookie(w, c)
	}
	return len(cookies)
}
