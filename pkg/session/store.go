package session

import (
	"context"
	"net/http"
)

// Store is the raw key-value persistence boundary a Session is layered over.
//
// A store may close itself after Write (cookie-backed stores do); it then
// reports IsStarted() == false until Start is called again.
type Store interface {
	// Start opens the underlying session. Calling it on a started store is a no-op.
	Start(ctx context.Context) error

	// IsStarted reports whether the store currently holds an open session.
	IsStarted() bool

	// Read returns a copy of the stored data.
	Read(ctx context.Context) (map[string]any, error)

	// Write replaces the stored data.
	Write(ctx context.Context, data map[string]any) error

	// RegenerateID issues a new session identifier. With deleteOld the record
	// stored under the previous identifier is removed.
	RegenerateID(ctx context.Context, deleteOld bool) error

	// Destroy removes the stored session.
	Destroy(ctx context.Context) error
}

// Identifier is implemented by stores that expose their session identifier.
type Identifier interface {
	ID() string
}

// Provider opens a request-bound Store.
type Provider interface {
	Open(w http.ResponseWriter, r *http.Request) Store
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(w http.ResponseWriter, r *http.Request) Store

// Open calls f(w, r).
func (f ProviderFunc) Open(w http.ResponseWriter, r *http.Request) Store {
	return f(w, r)
}

// Shared returns a Provider handing out the same store for every request.
// Useful in tests and single-tenant stateless deployments.
func Shared(store Store) Provider {
	return ProviderFunc(func(http.ResponseWriter, *http.Request) Store {
		return store
	})
}
