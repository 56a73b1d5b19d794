// Package csrf protects state-changing requests with a synchronizer token
// stored in the session.
//
// For every request that is not excluded the Guard makes sure the session
// holds a token (32 random bytes, hex encoded) and exposes it through the
// request context. Requests using a guarded method (POST, PUT, PATCH and
// DELETE by default) must present the same token in a header or in the
// form or JSON body; otherwise they are rejected with 419 Page Expired
// before the handler runs. The token is also sent back in a readable
// XSRF-TOKEN cookie so JavaScript clients can echo it in X-XSRF-TOKEN.
//
// # Usage
//
//	guard, err := csrf.New(cfg, csrf.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//
//	r.Use(cookie.Middleware)
//	r.Use(sessions.Middleware)
//	r.Use(guard.Except("/webhooks/*").Middleware)
//
// Templates render the hidden field with TemplateField:
//
//	<form method="post">{{ .CSRFField }}</form>
//
// # Exclusions
//
// Patterns are exact paths, exact absolute URLs or globs where * matches
// anything. Patterns starting with http:// or https:// are compared with
// the reconstructed request URL, others with the path.
package csrf
