package session

import "errors"

var (
	// ErrStoreStart indicates the underlying store could not open a session.
	// It is fatal for the request and must not be retried blindly.
	ErrStoreStart = errors.New("session.store_start_failed")

	// ErrStoreRead indicates session data could not be loaded from the store
	ErrStoreRead = errors.New("session.store_read_failed")

	// ErrStoreWrite indicates session data could not be persisted
	ErrStoreWrite = errors.New("session.store_write_failed")

	// ErrNotStarted is returned by operations that need an active store session
	ErrNotStarted = errors.New("session.not_started")

	// ErrNoSession indicates no session was found in the request context
	ErrNoSession = errors.New("session.not_found")

	// ErrNoProvider indicates the manager was built without a store provider
	ErrNoProvider = errors.New("session.no_provider")
)
