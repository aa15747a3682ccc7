package router

import (
	"log/slog"
	"net/http"

	"github.com/forumkit/errgate/core/handler"
)

// Option configures a Router during creation.
type Option[C handler.Context] func(*mux[C])

// WithErrorHandler sets the error handler for the router and every sub-router.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.cfg.errorHandler = h
		}
	}
}

// WithMiddleware adds middleware to the router.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithHTTPMiddleware adds plain net/http middleware (chi's, for example)
// that runs before routing.
func WithHTTPMiddleware[C handler.Context](middlewares ...func(http.Handler) http.Handler) Option[C] {
	return func(m *mux[C]) {
		m.chi.Use(middlewares...)
	}
}

// WithContextFactory sets a custom context factory for the router.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request) C) Option[C] {
	return func(m *mux[C]) {
		if f != nil {
			m.cfg.newContext = f
		}
	}
}

// WithLogger sets a custom logger for the router.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if logger != nil {
			m.cfg.logger = logger
		}
	}
}
