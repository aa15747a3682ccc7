package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumkit/errgate/core/apperr"
	"github.com/forumkit/errgate/core/router"
	"github.com/forumkit/errgate/middleware"
)

type failingStore struct{}

func (failingStore) IsBlacklisted(context.Context, string) (bool, error) {
	return false, errors.New("store down")
}

func TestMemoryBlacklist(t *testing.T) {
	t.Parallel()

	store, err := middleware.NewMemoryBlacklist("203.0.113.7", "198.51.100.0/24", "2001:db8::/32")
	require.NoError(t, err)

	tests := []struct {
		ip   string
		want bool
	}{
		{ip: "203.0.113.7", want: true},
		{ip: "203.0.113.8", want: false},
		{ip: "198.51.100.200", want: true},
		{ip: "::ffff:198.51.100.1", want: true},
		{ip: "2001:db8::1", want: true},
		{ip: "2001:db9::1", want: false},
		{ip: "garbage", want: false},
	}
	for _, tt := range tests {
		got, err := store.IsBlacklisted(context.Background(), tt.ip)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.ip)
	}

	store.Remove("198.51.100.0/24")
	store.Remove("203.0.113.7")
	banned, _ := store.IsBlacklisted(context.Background(), "198.51.100.200")
	assert.False(t, banned)
	banned, _ = store.IsBlacklisted(context.Background(), "203.0.113.7")
	assert.False(t, banned)
}

func TestMemoryBlacklistInvalidEntry(t *testing.T) {
	t.Parallel()

	_, err := middleware.NewMemoryBlacklist("999.1.1.1")
	assert.ErrorIs(t, err, middleware.ErrInvalidBlacklistEntry)

	_, err = middleware.NewMemoryBlacklist("10.0.0.0/99")
	assert.ErrorIs(t, err, middleware.ErrInvalidBlacklistEntry)
}

func TestBlacklistRejectsListedClient(t *testing.T) {
	t.Parallel()

	store, err := middleware.NewMemoryBlacklist("203.0.113.7")
	require.NoError(t, err)

	var got error
	r := router.New[*router.Context](router.WithErrorHandler(recordErrors(&got)))
	r.Use(middleware.Blacklist[*router.Context](store))
	r.Get("/", ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:5000"
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Error(t, got)
	e := apperr.From(got)
	assert.Equal(t, apperr.KindBlacklistedIP, e.Kind)
	assert.Equal(t, middleware.DefaultBlacklistMessage, e.Message)

	got = nil
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.8:5000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NoError(t, got)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBlacklistUsesStoredClientIP(t *testing.T) {
	t.Parallel()

	store, err := middleware.NewMemoryBlacklist("198.51.100.7")
	require.NoError(t, err)

	var got error
	r := router.New[*router.Context](router.WithErrorHandler(recordErrors(&got)))
	r.Use(middleware.ClientIP[*router.Context]())
	r.Use(middleware.BlacklistWithConfig[*router.Context](middleware.BlacklistConfig{
		Store:   store,
		Message: "go away",
	}))
	r.Get("/", ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Error(t, got)
	assert.Equal(t, "go away", got.Error())
}

func TestBlacklistFailsOpen(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	var got error
	r := router.New[*router.Context](router.WithErrorHandler(recordErrors(&got)))
	r.Use(middleware.BlacklistWithConfig[*router.Context](middleware.BlacklistConfig{
		Store:  failingStore{},
		Logger: log,
	}))
	r.Get("/", ok)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NoError(t, got)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), "blacklist lookup failed")
	assert.Contains(t, buf.String(), "store down")
}

func TestBlacklistRequiresStore(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		middleware.Blacklist[*router.Context](nil)
	})
}
