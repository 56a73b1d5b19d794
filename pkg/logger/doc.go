// Package logger builds slog loggers from env config, plus attribute helpers
// and context extractors.
//
// Every handler built here runs the registered ContextExtractors on each
// record, so request-scoped values (a request id, a hashed session id) end up
// in the output without threading loggers through the call stack.
//
// # Usage
//
//	log, err := logger.NewFromConfig(cfg,
//	    logger.WithContextExtractors(session.LogExtractor()),
//	)
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(log)
//
//	log.WarnContext(ctx, "csrf token mismatch",
//	    logger.Component("csrf"),
//	    logger.Request(r),
//	)
//
// Config.Env picks the defaults: JSON at info level in production, text at
// debug level elsewhere. LOG_LEVEL and LOG_FORMAT override them and are
// validated, so a typo fails startup instead of silently logging at info.
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("saved", logger.Error(err))
//
// needs no nil check.
package logger
