package native

import "errors"

var (
	// ErrUnknownBackend is returned by OpenBackend for unsupported drivers
	ErrUnknownBackend = errors.New("session.native.unknown_backend")

	// ErrBackendOpen wraps failures while connecting or migrating a backend
	ErrBackendOpen = errors.New("session.native.backend_open_failed")

	// ErrAdoptID is returned when a client supplied identifier cannot be adopted
	ErrAdoptID = errors.New("session.native.adopt_id_failed")
)
