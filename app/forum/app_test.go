package forum_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumkit/errgate/app/forum"
	"github.com/forumkit/errgate/core/errhandler"
	"github.com/forumkit/errgate/core/logger"
	"github.com/forumkit/errgate/core/server"
	"github.com/forumkit/errgate/integration/blacklist/redisstore"
	"github.com/forumkit/errgate/integration/database/redis"
)

func newApp(t *testing.T, relativePath string, blacklist ...string) http.Handler {
	t.Helper()

	app, err := forum.NewApp(context.Background(),
		forum.WithConfig(forum.Config{
			Server:    server.Config{Addr: "127.0.0.1:0"},
			Errors:    errhandler.Config{RelativePath: relativePath, SiteTitle: "Test Forum"},
			AppName:   "errgate-test",
			LogLevel:  "error",
			Blacklist: blacklist,
		}),
		forum.WithLogger(logger.Discard()),
	)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app.Router()
}

func do(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestAppServesTopics(t *testing.T) {
	t.Parallel()
	h := newApp(t, "")

	w := do(h, httptest.NewRequest(http.MethodGet, "/topic/1/welcome", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to the forum", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(h, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, "READY", w.Body.String())
}

func TestAppMalformedLinks(t *testing.T) {
	t.Parallel()
	h := newApp(t, "/forum")

	w := do(h, httptest.NewRequest(http.MethodGet, "/forum/topic/1/%C0%AF", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/forum/topic/1/", w.Header().Get("Location"))

	w = do(h, httptest.NewRequest(http.MethodGet, "/forum/api/topic/%FF", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"[[global:400.title]]"}`, w.Body.String())
}

func TestAppRedirectSignal(t *testing.T) {
	t.Parallel()
	h := newApp(t, "")

	w := do(h, httptest.NewRequest(http.MethodGet, "/topic/3/old", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/topic/1/welcome", w.Header().Get("Location"))

	w = do(h, httptest.NewRequest(http.MethodGet, "/api/topic/3", nil))
	assert.Equal(t, http.StatusPermanentRedirect, w.Code)
	assert.JSONEq(t, `"/topic/1/welcome"`, w.Body.String())
}

func TestAppGenericErrors(t *testing.T) {
	t.Parallel()
	h := newApp(t, "")

	w := do(h, httptest.NewRequest(http.MethodGet, "/api/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"path":"&#x2F;api&#x2F;fail","error":"deliberate failure"}`, w.Body.String())

	w = do(h, httptest.NewRequest(http.MethodGet, "/topic/99/none", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Error.")
	assert.Contains(t, w.Body.String(), "[[error:no-topic]]")
}

func TestAppCSRF(t *testing.T) {
	t.Parallel()
	h := newApp(t, "")

	w := do(h, httptest.NewRequest(http.MethodPost, "/topic/1/reply", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(h, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodPost, "/topic/1/reply", nil)
	req.AddCookie(cookies[0])
	req.Header.Set("X-CSRF-Token", cookies[0].Value)
	w = do(h, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAppBlacklist(t *testing.T) {
	t.Parallel()
	h := newApp(t, "", "203.0.113.0/24")

	req := httptest.NewRequest(http.MethodGet, "/topic/1/welcome", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	w := do(h, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Equal(t, "[[error:blacklisted-ip]]", w.Body.String())
}

func TestAppInvalidBlacklistEntry(t *testing.T) {
	t.Parallel()

	_, err := forum.NewApp(context.Background(),
		forum.WithConfig(forum.Config{
			Server:    server.Config{Addr: ":0"},
			Blacklist: []string{"not-an-ip"},
		}),
		forum.WithLogger(logger.Discard()),
	)
	assert.Error(t, err)
}

func TestAppRedisBlacklistSkipsRanges(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	var logs bytes.Buffer

	app, err := forum.NewApp(context.Background(),
		forum.WithConfig(forum.Config{
			Server:    server.Config{Addr: "127.0.0.1:0"},
			Redis:     redis.Config{ConnectionURL: "redis://" + mr.Addr(), RetryAttempts: 1},
			Blacklist: []string{"203.0.113.7", "198.51.100.0/24"},
		}),
		forum.WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
	)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	members, err := mr.Members(redisstore.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"203.0.113.7"}, members)
	assert.Contains(t, logs.String(), "ip blacklist range ignored by redis store")
	assert.Contains(t, logs.String(), "198.51.100.0/24")

	req := httptest.NewRequest(http.MethodGet, "/topic/1/welcome", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	w := do(app.Router(), req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/topic/1/welcome", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.9")
	w = do(app.Router(), req)
	assert.Equal(t, http.StatusOK, w.Code)
}
