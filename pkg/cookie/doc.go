// Package cookie builds HTTP cookies from shared defaults and batches
// response cookies per request.
//
// # Overview
//
// New creates an *http.Cookie from a name, a value and functional Options.
// The defaults are the secure ones used across the module: Path "/",
// HttpOnly and SameSite=Lax. Options override them per cookie.
//
// A Queue collects cookies that several middlewares want to emit for the
// same response. Middleware attaches an empty Queue to the request context
// and writes every queued cookie in a single pass right before the response
// headers are sent. Producers look the queue up with QueueFromContext and
// fall back to http.SetCookie when none is attached:
//
//	if q, ok := cookie.QueueFromContext(r.Context()); ok {
//		q.Add(c)
//	} else {
//		http.SetCookie(w, c)
//	}
//
// # Configuration
//
// SameSite is a text-unmarshalable wrapper around http.SameSite so it can be
// loaded from environment variables ("lax", "strict", "none", "default").
// SecurePolicy expresses "auto" (secure iff the request is HTTPS), "true" or
// "false".
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Use(cookie.Middleware)
//
//	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
//		q, _ := cookie.QueueFromContext(r.Context())
//		q.Add(cookie.New("theme", "dark", cookie.WithMaxAge(3600)))
//		w.Write([]byte("ok"))
//	})
package cookie
