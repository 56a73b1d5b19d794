package csrf_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sesskit/pkg/cookie"
	"github.com/dmitrymomot/sesskit/pkg/csrf"
	"github.com/dmitrymomot/sesskit/pkg/session"
)

// pipeline mounts the guard inside the session middleware.
func pipeline(t *testing.T, g *csrf.Guard, store session.Store, h http.HandlerFunc) http.Handler {
	t.Helper()
	m, err := session.NewManager(session.WithStore(store))
	require.NoError(t, err)
	return m.Middleware(g.Middleware(h))
}

func cookieNamed(res *http.Response, name string) []*http.Cookie {
	var out []*http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func TestMiddleware_GetIssuesToken(t *testing.T) {
	t.Parallel()
	store := session.NewMemoryStore()

	var seen string
	h := pipeline(t, newGuard(t, nil), store, func(w http.ResponseWriter, r *http.Request) {
		token, ok := csrf.TokenFromContext(r.Context())
		require.True(t, ok)
		attr, ok := csrf.AttributeFromContext(r.Context(), "csrf_token")
		require.True(t, ok)
		assert.Equal(t, token, attr)
		seen = token
		_, _ = io.WriteString(w, "form")
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/form", nil))

	res := rec.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, seen, 64)

	data, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seen, data["csrf_token"])

	cookies := cookieNamed(res, "XSRF-TOKEN")
	require.Len(t, cookies, 1)
	assert.Equal(t, seen, cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
	assert.False(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestMiddleware_SecureCookieOverHTTPS(t *testing.T) {
	t.Parallel()
	h := pipeline(t, newGuard(t, nil), session.NewMemoryStore(), func(http.ResponseWriter, *http.Request) {})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "https://example.com/", nil))

	cookies := cookieNamed(rec.Result(), "XSRF-TOKEN")
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}

func TestMiddleware_SecurePolicyOverride(t *testing.T) {
	t.Parallel()
	g := newGuard(t, func(c *csrf.Config) { c.CookieSecure = cookie.SecureNever })
	h := pipeline(t, g, session.NewMemoryStore(), func(http.ResponseWriter, *http.Request) {})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "https://example.com/", nil))

	cookies := cookieNamed(rec.Result(), "XSRF-TOKEN")
	require.Len(t, cookies, 1)
	assert.False(t, cookies[0].Secure)
}

func TestMiddleware_RejectsBeforeHandler(t *testing.T) {
	t.Parallel()

	for name, token := range map[string]string{"missing": "", "wrong": strings.Repeat("0", 64)} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			store := session.NewMemoryStore(session.WithData(map[string]any{"csrf_token": knownToken}))
			called := false
			h := pipeline(t, newGuard(t, nil), store, func(http.ResponseWriter, *http.Request) { called = true })

			r := httptest.NewRequest(http.MethodPost, "/submit", nil)
			if token != "" {
				r.Header.Set("X-XSRF-TOKEN", token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)

			assert.False(t, called)
			assert.Equal(t, 419, rec.Code)
			assert.Contains(t, rec.Body.String(), "csrf.token_mismatch")
			assert.Empty(t, cookieNamed(rec.Result(), "XSRF-TOKEN"))
		})
	}
}

func TestMiddleware_JSONRejection(t *testing.T) {
	t.Parallel()
	h := pipeline(t, newGuard(t, nil), session.NewMemoryStore(), func(http.ResponseWriter, *http.Request) {})

	r := httptest.NewRequest(http.MethodPost, "/api", nil)
	r.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, 419, rec.Code)
	assert.JSONEq(t, `{"error":"csrf.token_mismatch","status":419}`, rec.Body.String())
}

func TestMiddleware_HeaderTokenPasses(t *testing.T) {
	t.Parallel()
	store := session.NewMemoryStore(session.WithData(map[string]any{"csrf_token": knownToken}))
	h := pipeline(t, newGuard(t, nil), store, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r := httptest.NewRequest(http.MethodPost, "/submit", nil)
	r.Header.Set("X-XSRF-TOKEN", knownToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMiddleware_FormStaysReadable(t *testing.T) {
	t.Parallel()
	store := session.NewMemoryStore(session.WithData(map[string]any{"csrf_token": knownToken}))

	var name string
	h := pipeline(t, newGuard(t, nil), store, func(w http.ResponseWriter, r *http.Request) {
		name = r.PostFormValue("name")
	})

	r := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("name=alice&_token="+knownToken))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", name)
}

func TestMiddleware_RotationSequencing(t *testing.T) {
	t.Parallel()
	store := session.NewMemoryStore(session.WithData(map[string]any{"csrf_token": knownToken}))
	g := newGuard(t, func(c *csrf.Config) { c.Rotate = true })

	var seen string
	h := pipeline(t, g, store, func(w http.ResponseWriter, r *http.Request) {
		seen, _ = csrf.TokenFromContext(r.Context())
	})

	r := httptest.NewRequest(http.MethodPost, "/submit", nil)
	r.Header.Set("X-XSRF-TOKEN", knownToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, knownToken, seen)
	assert.Len(t, seen, 64)

	data, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seen, data["csrf_token"])

	cookies := cookieNamed(rec.Result(), "XSRF-TOKEN")
	require.Len(t, cookies, 1)
	assert.Equal(t, seen, cookies[0].Value)
}

func TestMiddleware_ExcludedSkipsSession(t *testing.T) {
	t.Parallel()
	g := newGuard(t, nil).Except("/webhooks/*")

	called := false
	// no session middleware: excluded requests must not need one
	h := g.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := csrf.TokenFromContext(r.Context())
		assert.False(t, ok)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhooks/stripe", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestMiddleware_RequiresSession(t *testing.T) {
	t.Parallel()
	h := newGuard(t, nil).Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMiddleware_QueuesExactlyOneCookie(t *testing.T) {
	t.Parallel()
	q := cookie.NewQueue()
	h := pipeline(t, newGuard(t, nil), session.NewMemoryStore(), func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(cookie.WithQueue(r.Context(), q))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, 1, q.Len())
	assert.Empty(t, rec.Header().Values("Set-Cookie"))

	flushed := q.Flush()
	require.Len(t, flushed, 1)
	assert.Equal(t, "XSRF-TOKEN", flushed[0].Name)
}

func TestMiddleware_CookieQueueMiddleware(t *testing.T) {
	t.Parallel()
	inner := pipeline(t, newGuard(t, nil), session.NewMemoryStore(), func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	h := cookie.Middleware(inner)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, cookieNamed(rec.Result(), "XSRF-TOKEN"), 1)
}

func TestMiddleware_CookieDisabled(t *testing.T) {
	t.Parallel()
	g := newGuard(t, func(c *csrf.Config) { c.CookieName = "" })
	h := pipeline(t, g, session.NewMemoryStore(), func(http.ResponseWriter, *http.Request) {})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, rec.Result().Cookies())
}

func TestTemplateField(t *testing.T) {
	t.Parallel()
	assert.Empty(t, string(csrf.TemplateField(context.Background())))

	var field string
	h := pipeline(t, newGuard(t, nil), session.NewMemoryStore(session.WithData(map[string]any{"csrf_token": knownToken})),
		func(w http.ResponseWriter, r *http.Request) {
			field = string(csrf.TemplateField(r.Context()))
		})
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, `<input type="hidden" name="_token" value="`+knownToken+`">`, field)
}
