package errhandler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/forumkit/errgate/core/header"
	"github.com/forumkit/errgate/core/i18n"
	"github.com/forumkit/errgate/core/logger"
	"github.com/forumkit/errgate/middleware"
)

type options struct {
	relativePath string
	siteTitle    string
	logger       *slog.Logger
	i18n         *i18n.I18n
	builder      header.Builder
	pages        Pages
	isAPI        func(ctx context.Context) bool
}

// Option configures the error handlers.
type Option func(*options)

// WithConfig applies an env-loaded Config.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.relativePath = cfg.RelativePath
		o.siteTitle = cfg.SiteTitle
	}
}

// WithRelativePath sets the base path prepended to redirect targets.
func WithRelativePath(path string) Option {
	return func(o *options) {
		o.relativePath = path
	}
}

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.logger = log
		}
	}
}

// WithI18n sets the bundle used by the default header builder.
func WithI18n(bundle *i18n.I18n) Option {
	return func(o *options) {
		o.i18n = bundle
	}
}

// WithHeaderBuilder replaces the default header builder.
func WithHeaderBuilder(b header.Builder) Option {
	return func(o *options) {
		if b != nil {
			o.builder = b
		}
	}
}

// WithPages replaces the default error pages.
func WithPages(p Pages) Option {
	return func(o *options) {
		if p != nil {
			o.pages = p
		}
	}
}

// WithAPIDetector replaces middleware.IsAPI as the API call check.
func WithAPIDetector(fn func(ctx context.Context) bool) Option {
	return func(o *options) {
		if fn != nil {
			o.isAPI = fn
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		siteTitle: "Forum",
		isAPI:     middleware.IsAPI,
		pages:     DefaultPages{},
	}
	for _, opt := range opts {
		opt(o)
	}

	o.relativePath = strings.TrimSuffix(o.relativePath, "/")
	if o.logger == nil {
		o.logger = logger.Discard()
	}
	if o.builder == nil {
		o.builder = header.DefaultBuilder{
			SiteTitle:    o.siteTitle,
			RelativePath: o.relativePath,
			I18n:         o.i18n,
		}
	}
	return o
}
