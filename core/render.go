package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/elnormous/contenttype"
)

var (
	textMediaType = contenttype.NewMediaType("text/plain")
	jsonMediaType = contenttype.NewMediaType("application/json")

	errorMediaTypes = []contenttype.MediaType{textMediaType, jsonMediaType}
)

// ErrorBody is the JSON payload written by WriteError.
type ErrorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// StatusOf resolves the HTTP status code for err.
// Errors exposing StatusCode() keep their own code, everything else is a 500.
func StatusOf(err error) int {
	var coded interface{ StatusCode() int }
	if errors.As(err, &coded) {
		return coded.StatusCode()
	}
	return http.StatusInternalServerError
}

// WriteError renders err as a plain-text or JSON response depending on the
// request's Accept header. Only HTTPError keys are exposed to the client;
// any other error is reported as internal_server_error.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	status := StatusOf(err)
	key := ErrInternalServerError.Key

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		key = httpErr.Key
	}

	var withHeaders interface{ Headers() http.Header }
	if errors.As(err, &withHeaders) {
		for name, values := range withHeaders.Headers() {
			for _, v := range values {
				w.Header().Add(name, v)
			}
		}
	}

	accepted, _, negErr := contenttype.GetAcceptableMediaType(r, errorMediaTypes)
	if negErr == nil && accepted.Matches(jsonMediaType) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(ErrorBody{Error: key, Status: status})
		return
	}

	http.Error(w, key, status)
}
