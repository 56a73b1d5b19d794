package native

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/pgxstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"
	goredis "github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/dmitrymomot/sesskit/pkg/logger"
	"github.com/dmitrymomot/sesskit/pkg/pg"
	"github.com/dmitrymomot/sesskit/pkg/redis"
)

//go:embed migrations
var migrations embed.FS

const (
	postgresMigrations = "migrations/postgres"
	sqliteMigrations   = "migrations/sqlite"
)

// Supported backend drivers.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// BackendConfig selects and configures the record store.
type BackendConfig struct {
	Driver          string        `env:"SESSION_BACKEND" envDefault:"memory"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
	SQLitePath      string        `env:"SESSION_SQLITE_PATH" envDefault:"sessions.db"`
	MigrationsTable string        `env:"SESSION_MIGRATIONS_TABLE" envDefault:"sesskit_migrations"`

	Redis    redis.Config
	Postgres pg.Config
}

// Backend is an scs store together with its health probe and teardown.
type Backend struct {
	Name  string
	Store scs.Store

	health  func(context.Context) error
	closers []func() error
}

// Healthcheck probes the underlying connection. The memory backend is always healthy.
func (b *Backend) Healthcheck(ctx context.Context) error {
	if b.health == nil {
		return nil
	}
	return b.health(ctx)
}

// Close stops cleanup goroutines and closes owned connections, last opened first.
func (b *Backend) Close() error {
	var errs []error
	for _, fn := range slices.Backward(b.closers) {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}

func (b *Backend) onClose(fn func() error) {
	b.closers = append(b.closers, fn)
}

// NewMemoryBackend keeps records in process memory.
func NewMemoryBackend(cleanup time.Duration) *Backend {
	store := memstore.NewWithCleanupInterval(cleanup)
	b := &Backend{Name: DriverMemory, Store: store}
	b.onClose(func() error { store.StopCleanup(); return nil })
	return b
}

// NewRedisBackend keeps records in redis under prefix. The client stays owned by the caller.
func NewRedisBackend(client *goredis.Client, prefix string) *Backend {
	return &Backend{
		Name:   DriverRedis,
		Store:  goredisstore.NewWithPrefix(client, prefix),
		health: redis.Healthcheck(client),
	}
}

// NewPostgresBackend keeps records in the sessions table. The pool stays owned by the caller.
func NewPostgresBackend(pool *pgxpool.Pool, cleanup time.Duration) *Backend {
	store := pgxstore.NewWithCleanupInterval(pool, cleanup)
	b := &Backend{Name: DriverPostgres, Store: store, health: pg.Healthcheck(pool)}
	b.onClose(func() error { store.StopCleanup(); return nil })
	return b
}

// NewSQLiteBackend keeps records in the sessions table. The db stays owned by the caller.
func NewSQLiteBackend(db *sql.DB, cleanup time.Duration) *Backend {
	store := sqlite3store.NewWithCleanupInterval(db, cleanup)
	b := &Backend{Name: DriverSQLite, Store: store, health: db.PingContext}
	b.onClose(func() error { store.StopCleanup(); return nil })
	return b
}

// OpenBackend connects the configured driver, runs migrations where needed
// and returns a Backend owning every connection it opened.
func OpenBackend(ctx context.Context, cfg BackendConfig, log *slog.Logger) (*Backend, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("session.backend"), logger.Backend(cfg.Driver))

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverMemory:
		return NewMemoryBackend(cfg.CleanupInterval), nil

	case DriverRedis:
		rcfg := cfg.Redis
		client, err := redis.Connect(ctx, rcfg)
		if err != nil {
			return nil, errors.Join(ErrBackendOpen, err)
		}
		b := NewRedisBackend(client, rcfg.KeyPrefix)
		b.onClose(client.Close)
		log.InfoContext(ctx, "session backend ready")
		return b, nil

	case DriverPostgres, "pg":
		pcfg := cfg.Postgres
		if pcfg.MigrationsTable == "" {
			pcfg.MigrationsTable = cfg.MigrationsTable
		}
		pool, err := pg.Connect(ctx, pcfg)
		if err != nil {
			return nil, errors.Join(ErrBackendOpen, err)
		}
		if err := pg.Migrate(ctx, pool, pcfg, migrations, postgresMigrations, log); err != nil {
			pool.Close()
			return nil, errors.Join(ErrBackendOpen, err)
		}
		b := NewPostgresBackend(pool, cfg.CleanupInterval)
		b.closers = slices.Insert(b.closers, 0, func() error { pool.Close(); return nil })
		log.InfoContext(ctx, "session backend ready")
		return b, nil

	case DriverSQLite:
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, errors.Join(ErrBackendOpen, err)
		}
		if err := migrateSQLite(ctx, db, cfg.MigrationsTable, log); err != nil {
			_ = db.Close()
			return nil, errors.Join(ErrBackendOpen, err)
		}
		b := NewSQLiteBackend(db, cfg.CleanupInterval)
		b.closers = slices.Insert(b.closers, 0, db.Close)
		log.InfoContext(ctx, "session backend ready")
		return b, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Driver)
}

// migrateSQLite creates the sessions table. goose keeps global state, so
// migrations must not run concurrently.
func migrateSQLite(ctx context.Context, db *sql.DB, table string, log *slog.Logger) error {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(pg.NewGooseLogger(log))
	if table != "" {
		goose.SetTableName(table)
	}

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, sqliteMigrations)
}
