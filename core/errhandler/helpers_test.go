package errhandler_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/core/i18n"
	"github.com/forumkit/errgate/core/router"
	"github.com/forumkit/errgate/middleware"
)

type logBuffer struct {
	bytes.Buffer
	logger *slog.Logger
}

func newLogBuffer() *logBuffer {
	b := &logBuffer{}
	b.logger = slog.New(slog.NewJSONHandler(&b.Buffer, nil))
	return b
}

// count returns the number of log records written.
func (b *logBuffer) count() int {
	return strings.Count(b.String(), "\n")
}

func recordNext() (handler.ErrorHandler[*router.Context], *bool) {
	called := new(bool)
	return func(ctx *router.Context, err error) {
		*called = true
	}, called
}

func serve(h handler.ErrorHandler[*router.Context], r *http.Request, err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(router.NewContext(w, r), err)
	return w
}

func apiRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	return r.WithContext(middleware.WithAPI(r.Context()))
}

func forumBundle(t *testing.T) *i18n.I18n {
	t.Helper()
	b, err := i18n.Forum()
	require.NoError(t, err)
	return b
}
