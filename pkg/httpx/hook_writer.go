// Package httpx holds small net/http helpers shared by the session, csrf and
// cookie middlewares.
package httpx

import (
	"net/http"
	"sync"
)

// HookWriter wraps an http.ResponseWriter and runs a callback exactly once,
// right before the response headers are sent. Middlewares use it to mutate
// headers (Set-Cookie) after the wrapped handler has run but before the
// status line leaves the process.
type HookWriter struct {
	http.ResponseWriter

	once    sync.Once
	before  func()
	written bool
}

// NewHookWriter returns a writer that calls before on the first WriteHeader,
// Write or Flush. A nil callback is allowed.
func NewHookWriter(w http.ResponseWriter, before func()) *HookWriter {
	return &HookWriter{ResponseWriter: w, before: before}
}

// Fire runs the callback if it has not run yet.
// Call it after the handler returns to cover responses with no body.
func (h *HookWriter) Fire() {
	h.once.Do(func() {
		if h.before != nil {
			h.before()
		}
	})
}

// Written reports whether the headers have been sent through this writer.
func (h *HookWriter) Written() bool {
	return h.written
}

func (h *HookWriter) WriteHeader(status int) {
	if h.written {
		return
	}
	h.Fire()
	h.written = true
	h.ResponseWriter.WriteHeader(status)
}

func (h *HookWriter) Write(p []byte) (int, error) {
	if !h.written {
		h.WriteHeader(http.StatusOK)
	}
	return h.ResponseWriter.Write(p)
}

// Flush implements http.Flusher for streaming handlers.
func (h *HookWriter) Flush() {
	if !h.written {
		h.WriteHeader(http.StatusOK)
	}
	if f, ok := h.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (h *HookWriter) Unwrap() http.ResponseWriter {
	return h.ResponseWriter
}
