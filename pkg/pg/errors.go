package pg

import "errors"

var (
	ErrEmptyConnectionString    = errors.New("pg.empty_connection_string")
	ErrFailedToParseDBConfig    = errors.New("pg.invalid_config")
	ErrFailedToOpenDBConnection = errors.New("pg.connection_failed")
	ErrHealthcheckFailed        = errors.New("pg.healthcheck_failed")
	ErrFailedToApplyMigrations  = errors.New("pg.migrations_failed")
)
