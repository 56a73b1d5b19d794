// Package session provides request-scoped session state for net/http
// handlers.
//
// A Session sits on top of a Store, the raw key-value persistence boundary.
// It loads data on Start, tracks changes, ages flash data and writes the
// data back on Save. A store opened per request comes from a Provider; the
// cookie-backed implementation lives in the native subpackage and an
// in-process MemoryStore ships here.
//
// # Flash data
//
// Values stored with Flash survive the current activation and the next
// one. Bookkeeping is kept under FlashKey as a FlashState. On every
// activation the keys flashed two activations ago are removed and the
// current keys move to the old slot. Aging runs once per activation, so a
// store that closes itself on Write can be restarted in the same request
// without losing flash data.
//
// # Usage
//
//	mgr, err := session.NewManager(
//	    session.WithProvider(provider),
//	    session.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//
//	r.Use(mgr.Middleware)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    s := session.MustFromContext(r.Context())
//	    s.Flash("status", "saved")
//	    http.Redirect(w, r, "/", http.StatusSeeOther)
//	}
//
// The middleware saves the session right before the response headers are
// sent and once more when the handler returns or panics.
//
// # Error Handling
//
// Store failures are wrapped with ErrStoreStart, ErrStoreRead or
// ErrStoreWrite. A failed start aborts the request with a 500 response
// rendered by the configured ErrorHandler.
package session
