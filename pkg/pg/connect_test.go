package pg_test

import (
	"context"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sesskit/pkg/pg"
)

func TestConfig_Defaults(t *testing.T) {
	var cfg pg.Config
	require.NoError(t, env.Parse(&cfg))

	assert.Empty(t, cfg.ConnectionString)
	assert.Equal(t, int32(10), cfg.MaxOpenConns)
	assert.Equal(t, "sesskit_migrations", cfg.MigrationsTable)
}

func TestConnect_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  pg.Config
		want error
	}{
		{"empty", pg.Config{}, pg.ErrEmptyConnectionString},
		{"bad port", pg.Config{ConnectionString: "postgres://app@localhost:notaport/app"}, pg.ErrFailedToParseDBConfig},
		{
			"unreachable",
			pg.Config{
				ConnectionString: "postgres://app@127.0.0.1:1/app?connect_timeout=1",
				MaxOpenConns:     1,
				RetryAttempts:    1,
				RetryInterval:    10 * time.Millisecond,
			},
			pg.ErrFailedToOpenDBConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pool, err := pg.Connect(ctx, tt.cfg)
			assert.Nil(t, pool)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
