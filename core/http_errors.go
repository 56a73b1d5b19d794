package core

import "net/http"

// StatusPageExpired is the non-standard status code used when a form or
// request carries a stale or missing anti-forgery token.
const StatusPageExpired = 419

// HTTPError represents an HTTP error with status code and translation key.
// The Key field is intended for i18n/l10n - renderers can use it
// to look up translated error messages.
type HTTPError struct {
	Code int    // HTTP status code
	Key  string // Translation key (e.g., "not_found", "csrf.token_mismatch")
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

// StatusCode returns the HTTP status code carried by the error.
func (e HTTPError) StatusCode() int {
	return e.Code
}

// Headers returns extra response headers for the error.
// HTTPError never adds headers of its own.
func (e HTTPError) Headers() http.Header {
	return http.Header{}
}

// 4xx Client Errors
var (
	ErrBadRequest           = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrUnauthorized         = HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized"}
	ErrForbidden            = HTTPError{Code: http.StatusForbidden, Key: "forbidden"}
	ErrNotFound             = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrMethodNotAllowed     = HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"}
	ErrPageExpired          = HTTPError{Code: StatusPageExpired, Key: "page_expired"}
	ErrUnsupportedMediaType = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "unsupported_media_type"}
	ErrTooManyRequests      = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"}
)

// 5xx Server Errors
var (
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrServiceUnavailable  = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
)

// NewHTTPError creates a custom HTTP error with the given status code and translation key.
//
// Example:
//
//	err := core.NewHTTPError(core.StatusPageExpired, "csrf.token_mismatch")
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}
