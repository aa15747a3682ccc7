package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/core/response"
	"github.com/forumkit/errgate/core/router"
	"github.com/forumkit/errgate/middleware"
)

func TestLoggingCompletedRequest(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := router.New[*router.Context]()
	r.Use(middleware.LoggingWithLogger[*router.Context](log))
	r.Get("/topic/{tid}", func(ctx *router.Context) handler.Response {
		return response.StringWithStatus("nope", http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/topic/1", nil))

	out := buf.String()
	assert.Contains(t, out, `"msg":"HTTP request completed"`)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"status_code":404`)
	assert.Contains(t, out, `"bytes_out":4`)
}

func TestLoggingHandoff(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var got error
	r := router.New[*router.Context](router.WithErrorHandler(recordErrors(&got)))
	r.Use(middleware.LoggingWithLogger[*router.Context](log))
	r.Get("/fail", func(ctx *router.Context) handler.Response {
		return response.Error(assert.AnError)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.ErrorIs(t, got, assert.AnError)
	assert.Contains(t, buf.String(), "HTTP request handed to error handler")
}

func TestLoggingRedactsHeaders(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := router.New[*router.Context]()
	r.Use(middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
		Logger:     log,
		LogHeaders: true,
	}))
	r.Get("/", ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer secret")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotContains(t, buf.String(), "secret")
	assert.Contains(t, buf.String(), "[REDACTED]")
}
