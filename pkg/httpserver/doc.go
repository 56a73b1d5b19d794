// Package httpserver runs an http.Handler with sane timeouts and graceful
// shutdown on context cancellation or SIGINT/SIGTERM.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server", logger.Error(err))
//	}
//
// HealthHandler serves liveness ("ALIVE") and readiness ("READY" or
// "NOT_READY") probes built from named checks.
package httpserver
