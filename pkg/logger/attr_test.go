package logger_test

import (
	"errors"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sesskit/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestRequest(t *testing.T) {
	attr := logger.Request(httptest.NewRequest("POST", "/form?x=1", nil))
	require.Equal(t, "request", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "POST", g[0].Value.String())
	assert.Equal(t, "/form", g[1].Value.String())

	assert.True(t, logger.Request(nil).Equal(slog.Attr{}))
}

func TestSimpleAttrs(t *testing.T) {
	assert.Equal(t, "abc", logger.RequestID("abc").Value.Any())
	assert.True(t, logger.RequestID(nil).Equal(slog.Attr{}))
	assert.Equal(t, "backend", logger.Backend("redis").Key)
	assert.Equal(t, "csrf", logger.Component("csrf").Value.String())
	assert.Equal(t, "event", logger.Event("rotated").Key)
}
