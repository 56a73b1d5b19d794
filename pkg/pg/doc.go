// Package pg opens the PostgreSQL pool used by the postgres session backend.
//
// Connect builds a pgx/v5 pool from Config and retries until the database
// answers a ping. Migrate runs goose migrations from an fs.FS (usually an
// embedded directory) so the sessions table exists before traffic arrives.
// Healthcheck adapts the pool to the httpserver health handler.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, migrations, "migrations/postgres", log); err != nil {
//	    return err
//	}
package pg
