package header_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumkit/errgate/core/header"
	"github.com/forumkit/errgate/core/i18n"
	"github.com/forumkit/errgate/middleware"
)

func TestDefaultBuilder(t *testing.T) {
	t.Parallel()

	bundle, err := i18n.Forum()
	require.NoError(t, err)

	b := header.DefaultBuilder{SiteTitle: "Forum", RelativePath: "/forum", I18n: bundle}

	r := httptest.NewRequest(http.MethodGet, "/forum/topic/1", nil)
	r.Header.Set("Accept-Language", "de-DE,de;q=0.9")

	h, err := b.Build(middleware.WithAPI(context.Background()), r)
	require.NoError(t, err)

	assert.Equal(t, "Forum", h.SiteTitle)
	assert.Equal(t, "/forum", h.RelativePath)
	assert.Equal(t, "de", h.Lang)
	assert.Equal(t, "Interner Fehler.", h.T("[[global:500.title]]"))
	assert.Empty(t, h.CSRFToken)
	assert.Empty(t, h.RequestID)
}

func TestDefaultBuilderErrors(t *testing.T) {
	t.Parallel()

	_, err := header.DefaultBuilder{}.Build(context.Background(), nil)
	assert.ErrorIs(t, err, header.ErrNoRequest)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = header.DefaultBuilder{}.Build(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHeaderWithoutTranslator(t *testing.T) {
	t.Parallel()

	h, err := header.DefaultBuilder{}.Build(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "[[global:400.title]]", h.T("[[global:400.title]]"))
}

func TestBuilderFunc(t *testing.T) {
	t.Parallel()

	var b header.Builder = header.BuilderFunc(func(ctx context.Context, r *http.Request) (header.Header, error) {
		return header.Header{SiteTitle: r.URL.Path}, nil
	})
	h, err := b.Build(context.Background(), httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, "/x", h.SiteTitle)
}
