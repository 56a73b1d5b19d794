package cookie

import "errors"

var (
	ErrInvalidSameSite     = errors.New("cookie.invalid_same_site")
	ErrInvalidSecurePolicy = errors.New("cookie.invalid_secure_policy")
)
