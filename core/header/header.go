// Package header builds the per-request page header that HTML error pages
// render around their body: site title, base path, negotiated language and
// the request's correlation values.
package header

import (
	"context"
	"errors"
	"net/http"

	"github.com/forumkit/errgate/core/i18n"
	"github.com/forumkit/errgate/middleware"
)

// ErrNoRequest is returned when Build is called without a request.
var ErrNoRequest = errors.New("header: request is required")

// Header is the data shared by every rendered page.
type Header struct {
	SiteTitle    string
	RelativePath string
	Lang         string
	CSRFToken    string
	RequestID    string
	Translator   *i18n.Translator
}

// T translates a bracket token. Without a translator the text comes back unchanged.
func (h Header) T(text string) string {
	return h.Translator.Translate(text)
}

// Builder produces the page header for a request. The caller waits for it
// before rendering.
type Builder interface {
	Build(ctx context.Context, r *http.Request) (Header, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx context.Context, r *http.Request) (Header, error)

// Build implements Builder.
func (f BuilderFunc) Build(ctx context.Context, r *http.Request) (Header, error) {
	return f(ctx, r)
}

// DefaultBuilder fills a Header from configuration, the i18n bundle and the
// values recorded by the request middlewares.
type DefaultBuilder struct {
	SiteTitle    string
	RelativePath string
	I18n         *i18n.I18n
}

// Build implements Builder.
func (b DefaultBuilder) Build(ctx context.Context, r *http.Request) (Header, error) {
	if r == nil {
		return Header{}, ErrNoRequest
	}
	if err := ctx.Err(); err != nil {
		return Header{}, err
	}

	h := Header{
		SiteTitle:    b.SiteTitle,
		RelativePath: b.RelativePath,
		CSRFToken:    middleware.CSRFToken(ctx),
	}
	if id, ok := middleware.GetRequestID(ctx); ok {
		h.RequestID = id
	}
	if b.I18n != nil {
		h.Lang = b.I18n.Match(r.Header.Get("Accept-Language"))
		h.Translator = i18n.NewTranslator(b.I18n, h.Lang)
	}
	return h, nil
}
