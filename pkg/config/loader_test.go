package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sesskit/pkg/config"
)

type fileConfig struct {
	Name   string   `env:"CONFIG_TEST_NAME"`
	Port   int      `env:"CONFIG_TEST_PORT"`
	Tags   []string `env:"CONFIG_TEST_TAGS" envSeparator:","`
	Quoted string   `env:"CONFIG_TEST_QUOTED"`
	Extra  string   `env:"CONFIG_TEST_EXTRA"`
}

type requiredConfig struct {
	Secret string `env:"CONFIG_TEST_SECRET,required"`
}

type defaultsConfig struct {
	Level string `env:"CONFIG_TEST_LEVEL" envDefault:"info"`
}

// unsetAll clears keys that godotenv may have set outside t.Setenv.
func unsetAll(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, os.Unsetenv(k))
	}
	t.Cleanup(func() {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
	})
}

var fileKeys = []string{
	"CONFIG_TEST_NAME", "CONFIG_TEST_PORT", "CONFIG_TEST_TAGS",
	"CONFIG_TEST_QUOTED", "CONFIG_TEST_EXTRA",
}

func TestLoadEnv_EarlierFileWins(t *testing.T) {
	unsetAll(t, fileKeys...)
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.base", "testdata/.env.override"))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "from_file", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
	assert.Equal(t, "quoted value", cfg.Quoted)
	assert.Equal(t, "extra", cfg.Extra)
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := config.LoadEnv("testdata/missing.env")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)

	assert.Panics(t, func() { config.MustLoadEnv("testdata/missing.env") })
}

func TestLoad_CachesPerType(t *testing.T) {
	config.ResetCache()
	t.Setenv("CONFIG_TEST_LEVEL", "debug")

	var first defaultsConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "debug", first.Level)

	t.Setenv("CONFIG_TEST_LEVEL", "warn")

	var second defaultsConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "debug", second.Level)

	cached, err := config.Cached[defaultsConfig]()
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	require.NoError(t, config.Reload(&second))
	assert.Equal(t, "warn", second.Level)
}

func TestLoad_RequiredMissing(t *testing.T) {
	config.ResetCache()

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	_, err = config.Cached[requiredConfig]()
	assert.ErrorIs(t, err, config.ErrConfigNotLoaded)

	t.Setenv("CONFIG_TEST_SECRET", "s3cret")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "s3cret", cfg.Secret)

	assert.NotPanics(t, func() { config.MustLoad(&cfg) })
}

func TestLoad_NilPointer(t *testing.T) {
	assert.ErrorIs(t, config.Load[defaultsConfig](nil), config.ErrNilPointer)
}
