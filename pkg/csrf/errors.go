package csrf

import (
	"errors"

	"github.com/dmitrymomot/sesskit/core"
)

var (
	// ErrTokenMismatch rejects a request whose token is missing or wrong.
	// It renders as 419 Page Expired with no extra headers.
	ErrTokenMismatch = core.NewHTTPError(core.StatusPageExpired, "csrf.token_mismatch")

	// ErrInvalidConfig indicates the guard cannot be built from the given config
	ErrInvalidConfig = errors.New("csrf.invalid_config")

	// ErrTokenGeneration indicates the random source failed
	ErrTokenGeneration = errors.New("csrf.token_generation_failed")
)
