// Package native implements the cookie-transported session store.
//
// Session data lives server side in an alexedwards/scs/v2 store; the client
// only carries the session token in a cookie (or, with CookieOnly disabled,
// a query parameter). A Provider opens one Store per request. Every Write
// commits the data, emits the cookie and closes the store, so a later Start
// in the same request reloads the committed record.
//
// Backends are picked with OpenBackend:
//
//	memory    scs memstore
//	redis     scs goredisstore over pkg/redis
//	postgres  scs pgxstore over pkg/pg, table created by embedded migrations
//	sqlite    scs sqlite3store over modernc.org/sqlite, same migrations
//
// Usage:
//
//	backend, err := native.OpenBackend(ctx, backendCfg, log)
//	if err != nil {
//	    return err
//	}
//	defer backend.Close()
//
//	provider := native.NewProvider(sessionCfg, backend.Store, native.WithLogger(log))
//	mgr, err := session.NewManager(session.WithProvider(provider))
package native
