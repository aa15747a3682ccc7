package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumkit/errgate/core/apperr"
	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/core/response"
	"github.com/forumkit/errgate/core/router"
	"github.com/forumkit/errgate/middleware"
)

func newCSRFRouter(got *error) router.Router[*router.Context] {
	r := router.New[*router.Context](router.WithErrorHandler(recordErrors(got)))
	r.Use(middleware.CSRFWithConfig[*router.Context](middleware.CSRFConfig{
		Generator: func() string { return "tok-1" },
	}))
	r.Get("/form", func(ctx *router.Context) handler.Response {
		return response.String(middleware.CSRFToken(ctx))
	})
	r.Post("/form", func(ctx *router.Context) handler.Response {
		return response.String("saved")
	})
	return r
}

func TestCSRFIssuesTokenOnSafeMethods(t *testing.T) {
	t.Parallel()

	var got error
	r := newCSRFRouter(&got)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))

	require.NoError(t, got)
	assert.Equal(t, "tok-1", w.Body.String())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "_csrf", cookies[0].Name)
	assert.Equal(t, "tok-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestCSRFReusesExistingCookie(t *testing.T) {
	t.Parallel()

	var got error
	r := newCSRFRouter(&got)

	req := httptest.NewRequest(http.MethodGet, "/form", nil)
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: "existing"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "existing", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestCSRFAcceptsMatchingToken(t *testing.T) {
	t.Parallel()

	var got error
	r := newCSRFRouter(&got)

	req := httptest.NewRequest(http.MethodPost, "/form", nil)
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: "tok-9"})
	req.Header.Set("X-CSRF-Token", "tok-9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.NoError(t, got)
	assert.Equal(t, "saved", w.Body.String())

	form := url.Values{"_csrf": {"tok-9"}}
	req = httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: "tok-9"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.NoError(t, got)
	assert.Equal(t, "saved", w.Body.String())
}

func TestCSRFRejectsMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cookie string
		header string
	}{
		{name: "no cookie", header: "tok"},
		{name: "no echo", cookie: "tok"},
		{name: "different", cookie: "tok", header: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got error
			r := newCSRFRouter(&got)

			req := httptest.NewRequest(http.MethodPost, "/form", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "_csrf", Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("X-CSRF-Token", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Error(t, got)
			e := apperr.From(got)
			assert.Equal(t, apperr.KindCSRFMismatch, e.Kind)
			assert.Equal(t, apperr.CodeCSRFMismatch, e.Code())
			assert.Equal(t, 599, w.Code)
		})
	}
}

func TestCSRFSkip(t *testing.T) {
	t.Parallel()

	var got error
	r := router.New[*router.Context](router.WithErrorHandler(recordErrors(&got)))
	r.Use(middleware.CSRFWithConfig[*router.Context](middleware.CSRFConfig{
		Skip: func(ctx handler.Context) bool { return middleware.IsAPI(ctx) },
	}))
	r.Post("/api/hook", ok)

	req := httptest.NewRequest(http.MethodPost, "/api/hook", nil)
	req = req.WithContext(middleware.WithAPI(req.Context()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.NoError(t, got)
	assert.Equal(t, http.StatusOK, w.Code)
}
