package csrf

import (
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/dmitrymomot/sesskit/pkg/cookie"
)

// pattern is a compiled exclusion entry. Absolute patterns match the full
// request URL, everything else matches the path. A * matches any run of
// characters, slashes included.
type pattern struct {
	raw      string
	absolute bool
	glob     *regexp.Regexp
}

// compilePatterns trims entries and skips blank ones.
func compilePatterns(raw []string) []pattern {
	out := make([]pattern, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		cp := pattern{
			raw:      p,
			absolute: strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://"),
		}
		if strings.Contains(p, "*") {
			expr := strings.ReplaceAll(regexp.QuoteMeta(p), `\*`, ".*")
			cp.glob = regexp.MustCompile("^" + expr + "$")
		}
		out = append(out, cp)
	}
	return out
}

func (p pattern) match(value string) bool {
	if p.raw == value {
		return true
	}
	return p.glob != nil && p.glob.MatchString(value)
}

// fullURL rebuilds scheme://host[:port]/path, omitting ports 80 and 443.
// Query strings are not part of the match.
func fullURL(r *http.Request) string {
	scheme := "http"
	if cookie.IsHTTPS(r) {
		scheme = "https"
	}

	host := r.Host
	if host == "" {
		host = r.URL.Host
	}
	if h, port, err := net.SplitHostPort(host); err == nil && (port == "80" || port == "443") {
		host = h
		if strings.Contains(h, ":") {
			host = "[" + h + "]"
		}
	}

	return scheme + "://" + host + r.URL.Path
}
