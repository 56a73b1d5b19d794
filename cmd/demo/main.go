// Command demo serves a small form application protected by sessions and
// CSRF tokens. Configuration comes from the environment and an optional .env.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/sesskit/pkg/config"
	"github.com/dmitrymomot/sesskit/pkg/cookie"
	"github.com/dmitrymomot/sesskit/pkg/csrf"
	"github.com/dmitrymomot/sesskit/pkg/httpserver"
	"github.com/dmitrymomot/sesskit/pkg/logger"
	"github.com/dmitrymomot/sesskit/pkg/session"
	"github.com/dmitrymomot/sesskit/pkg/session/native"
)

func main() {
	var (
		logCfg     logger.Config
		sessCfg    session.Config
		backendCfg native.BackendConfig
		csrfCfg    csrf.Config
		httpCfg    httpserver.Config
	)
	config.MustLoad(&logCfg)
	config.MustLoad(&sessCfg)
	config.MustLoad(&backendCfg)
	config.MustLoad(&csrfCfg)
	config.MustLoad(&httpCfg)

	log, err := logger.NewFromConfig(logCfg,
		logger.WithContextValue("request_id", middleware.RequestIDKey),
		logger.WithContextExtractors(session.LogExtractor()),
	)
	if err != nil {
		slog.Error("logger config", logger.Error(err))
		os.Exit(1)
	}
	slog.SetDefault(log)

	if err := run(context.Background(), log, sessCfg, backendCfg, csrfCfg, httpCfg); err != nil {
		log.Error("demo stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	log *slog.Logger,
	sessCfg session.Config,
	backendCfg native.BackendConfig,
	csrfCfg csrf.Config,
	httpCfg httpserver.Config,
) (err error) {
	backend, err := native.OpenBackend(ctx, backendCfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, backend.Close())
		}
	}()

	provider := native.NewProvider(sessCfg, backend.Store, native.WithLogger(log))
	sessions, err := session.NewManager(
		session.WithProvider(provider),
		session.WithLogger(log),
	)
	if err != nil {
		return err
	}

	guard, err := csrf.New(csrfCfg, csrf.WithLogger(log))
	if err != nil {
		return err
	}

	ready := httpserver.Check{Name: "sessions." + backend.Name, Fn: backend.Healthcheck}
	r := newRouter(log, sessions, guard, ready)

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithOnShutdown(func() {
			if err := backend.Close(); err != nil {
				log.Error("closing session backend", logger.Backend(backend.Name), logger.Error(err))
			}
		}),
	)
	return srv.Run(ctx, r)
}

func newRouter(log *slog.Logger, sessions *session.Manager, guard *csrf.Guard, checks ...httpserver.Check) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.Get("/health", httpserver.HealthHandler(log))
	r.Get("/ready", httpserver.HealthHandler(log, checks...))

	r.Group(func(r chi.Router) {
		r.Use(cookie.Middleware, sessions.Middleware, guard.Except("/webhooks/*").Middleware)

		r.Get("/", showForm(log))
		r.Post("/messages", postMessage)
		r.Post("/logout", logout(log))
		r.Post("/webhooks/{source}", receiveWebhook(log))
	})

	return r
}
