package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumkit/errgate/core/apperr"
)

type codedError struct{ code, msg string }

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() string  { return e.code }

type redirectError struct {
	status int
	path   string
}

func (e redirectError) Error() string        { return "moved" }
func (e redirectError) StatusCode() int      { return e.status }
func (e redirectError) RedirectPath() string { return e.path }

type panicLike struct{}

func (panicLike) Error() string { return "panic: boom" }
func (panicLike) Stack() []byte { return []byte("goroutine 1 [running]") }

type badPath struct{}

func (badPath) Error() string      { return "invalid path encoding" }
func (badPath) MalformedURI() bool { return true }

func TestFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantKind   apperr.Kind
		wantStatus int
		wantPath   string
	}{
		{name: "plain error", err: errors.New("boom"), wantKind: apperr.KindGeneric},
		{name: "escape error", err: url.EscapeError("%zz"), wantKind: apperr.KindMalformedURI},
		{name: "wrapped url error", err: &url.Error{Op: "parse", URL: "/%zz", Err: url.EscapeError("%zz")}, wantKind: apperr.KindMalformedURI},
		{name: "malformed marker", err: fmt.Errorf("route: %w", badPath{}), wantKind: apperr.KindMalformedURI},
		{name: "csrf code", err: codedError{code: "EBADCSRFTOKEN", msg: "bad token"}, wantKind: apperr.KindCSRFMismatch, wantStatus: http.StatusForbidden},
		{name: "blacklist code", err: codedError{code: "blacklisted-ip", msg: "go away"}, wantKind: apperr.KindBlacklistedIP, wantStatus: http.StatusForbidden},
		{name: "unknown code", err: codedError{code: "ENOENT", msg: "missing"}, wantKind: apperr.KindGeneric},
		{name: "redirect 302", err: redirectError{status: 302, path: "/foo"}, wantKind: apperr.KindRedirect, wantStatus: 302, wantPath: "/foo"},
		{name: "redirect 308", err: redirectError{status: 308, path: "/foo"}, wantKind: apperr.KindRedirect, wantStatus: 308, wantPath: "/foo"},
		{name: "redirect status without path", err: redirectError{status: 302}, wantKind: apperr.KindGeneric, wantStatus: 302},
		{name: "path with other status", err: redirectError{status: 301, path: "/foo"}, wantKind: apperr.KindGeneric, wantStatus: 301, wantPath: "/foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := apperr.From(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantPath, got.Path)
		})
	}
}

func TestFromNil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, apperr.From(nil))
}

func TestFromKeepsAppError(t *testing.T) {
	t.Parallel()

	orig := apperr.BlacklistedIP("go away")
	got := apperr.From(fmt.Errorf("middleware: %w", orig))
	assert.Same(t, orig, got)
}

func TestFromCarriesStack(t *testing.T) {
	t.Parallel()

	got := apperr.From(panicLike{})
	assert.Equal(t, apperr.KindGeneric, got.Kind)
	assert.Equal(t, "goroutine 1 [running]", got.Stack)
	assert.Equal(t, "panic: boom", got.Message)
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	t.Run("malformed uri", func(t *testing.T) {
		t.Parallel()
		e := apperr.MalformedURI(nil)
		assert.Equal(t, apperr.KindMalformedURI, e.Kind)
		assert.Equal(t, "URI malformed", e.Error())
	})

	t.Run("csrf", func(t *testing.T) {
		t.Parallel()
		e := apperr.CSRFMismatch("")
		assert.Equal(t, apperr.KindCSRFMismatch, e.Kind)
		assert.Equal(t, "EBADCSRFTOKEN", e.Code())
		assert.Equal(t, http.StatusForbidden, e.StatusCode())
	})

	t.Run("blacklist", func(t *testing.T) {
		t.Parallel()
		e := apperr.BlacklistedIP("go away")
		assert.Equal(t, "blacklisted-ip", e.Code())
		assert.Equal(t, "go away", e.Error())
	})

	t.Run("redirect", func(t *testing.T) {
		t.Parallel()
		assert.True(t, apperr.Redirect(302, "/foo").IsRedirect())
		assert.True(t, apperr.Redirect(308, "/foo").IsRedirect())
		assert.False(t, apperr.Redirect(301, "/foo").IsRedirect())
		assert.False(t, apperr.Redirect(302, "").IsRedirect())
	})

	t.Run("new captures stack", func(t *testing.T) {
		t.Parallel()
		e := apperr.New(http.StatusTeapot, "short and stout")
		assert.Equal(t, apperr.KindGeneric, e.Kind)
		assert.Contains(t, e.Stack, "TestConstructors")
	})

	t.Run("wrap", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("db down")
		e := apperr.Wrap(cause, http.StatusServiceUnavailable)
		assert.ErrorIs(t, e, cause)
		assert.Equal(t, "db down", e.Error())
		assert.Nil(t, apperr.Wrap(nil, 500))
	})
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "generic", apperr.KindGeneric.String())
	assert.Equal(t, "malformed_uri", apperr.KindMalformedURI.String())
	assert.Equal(t, "csrf_mismatch", apperr.KindCSRFMismatch.String())
	assert.Equal(t, "blacklisted_ip", apperr.KindBlacklistedIP.String())
	assert.Equal(t, "redirect", apperr.KindRedirect.String())
	assert.Equal(t, "unknown", apperr.Kind(99).String())
}
