package csrf

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/elnormous/contenttype"
	"github.com/tidwall/gjson"
)

const (
	xsrfHeader = "X-XSRF-TOKEN"
	csrfHeader = "X-CSRF-Token"
)

var (
	jsonMediaType      = contenttype.NewMediaType("application/json")
	formMediaType      = contenttype.NewMediaType("application/x-www-form-urlencoded")
	multipartMediaType = contenttype.NewMediaType("multipart/form-data")
)

// extract returns the token presented by the client. Headers win over the
// body: the configured header, then X-XSRF-TOKEN, then X-CSRF-Token, each
// fallback skipped when it names the configured header.
func (g *Guard) extract(r *http.Request) (string, bool) {
	if v := r.Header.Get(g.cfg.HeaderName); v != "" {
		return v, true
	}
	for _, name := range []string{xsrfHeader, csrfHeader} {
		if strings.EqualFold(name, g.cfg.HeaderName) {
			continue
		}
		if v := r.Header.Get(name); v != "" {
			return v, true
		}
	}
	if g.cfg.InputKey == "" {
		return "", false
	}
	return g.fromBody(r)
}

func (g *Guard) fromBody(r *http.Request) (string, bool) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", false
	}

	mt, err := contenttype.GetMediaType(r)
	if err != nil {
		return "", false
	}

	switch {
	case mt.Matches(formMediaType), mt.Matches(multipartMediaType):
		v := r.PostFormValue(g.cfg.InputKey)
		return v, v != ""
	case mt.Matches(jsonMediaType), mt.Type == "application" && strings.HasSuffix(mt.Subtype, "+json"):
		return g.fromJSON(r)
	}
	return "", false
}

// fromJSON peeks at most MaxBodySize bytes and puts them back in front of
// the remaining body so handlers still read the whole payload.
func (g *Guard) fromJSON(r *http.Request) (string, bool) {
	limit := g.cfg.MaxBodySize
	buf, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	r.Body = readCloser{
		Reader: io.MultiReader(bytes.NewReader(buf), r.Body),
		Closer: r.Body,
	}
	if err != nil || int64(len(buf)) > limit || !gjson.ValidBytes(buf) {
		return "", false
	}

	// the input key names a top-level field, not a gjson path
	res := gjson.GetBytes(buf, gjson.Escape(g.cfg.InputKey))
	if res.Type != gjson.String || res.Str == "" {
		return "", false
	}
	return res.Str, true
}

type readCloser struct {
	io.Reader
	io.Closer
}
