package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/core/logger"
)

// muxConfig is shared by a router and all of its groups and sub-routers.
type muxConfig[C handler.Context] struct {
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
}

// mux is the private implementation of Router interface.
type mux[C handler.Context] struct {
	chi         chi.Router
	cfg         *muxConfig[C]
	middlewares []handler.Middleware[C]
	parent      *mux[C] // set for groups and sub-routes, which snapshot its middlewares
	routed      bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		chi: chi.NewRouter(),
		cfg: &muxConfig[C]{
			errorHandler: defaultErrorHandler[C],
			logger:       logger.Discard(),
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.cfg.newContext == nil {
		m.cfg.newContext = func(w http.ResponseWriter, r *http.Request) C {
			// Only the default *Context works without a factory.
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	m.chi.NotFound(m.routeError(ErrNotFound))
	m.chi.MethodNotAllowed(m.routeError(ErrMethodNotAllowed))

	return m
}

// ServeHTTP implements http.Handler interface.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.chi.ServeHTTP(w, r)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodGet, pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodPost, pattern, h)
}

func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodPut, pattern, h)
}

func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodDelete, pattern, h)
}

func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodPatch, pattern, h)
}

// Handle registers a handler for all HTTP methods.
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.markRouted()
	m.chi.Handle(pattern, m.endpoint(h))
}

// Method registers a handler for a single HTTP method.
func (m *mux[C]) Method(method, pattern string, h handler.HandlerFunc[C]) {
	m.markRouted()
	m.chi.Method(strings.ToUpper(method), pattern, m.endpoint(h))
}

// Use appends middleware to the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.routed {
		panic("router: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With creates a new inline router with additional middleware.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		chi:         m.chi,
		cfg:         m.cfg,
		middlewares: append(slices.Clone(m.middlewares), middlewares...),
		parent:      m,
	}
}

// Group creates a new inline router for grouping routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Route creates a new sub-router mounted at the given pattern.
func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilSubrouter, pattern))
	}
	m.markRouted()

	sub := &mux[C]{cfg: m.cfg, middlewares: slices.Clone(m.middlewares), parent: m}
	m.chi.Route(pattern, func(cr chi.Router) {
		sub.chi = cr
		fn(sub)
	})
	return sub
}

// Mount attaches a sub-router at the given pattern. The sub-router adopts the
// parent's error handler, logger and context factory.
func (m *mux[C]) Mount(pattern string, sub Router[C]) {
	if sub == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilRouter, pattern))
	}
	subMux, ok := sub.(*mux[C])
	if !ok {
		panic("router: can only mount routers created by router.New")
	}
	m.markRouted()

	*subMux.cfg = *m.cfg
	m.chi.Mount(pattern, subMux.chi)
}

// Routes returns all registered routes.
func (m *mux[C]) Routes() []Route {
	var routes []Route
	_ = chi.Walk(m.chi, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, Route{Method: method, Pattern: route})
		return nil
	})
	return routes
}

// markRouted blocks further Use calls here and on every ancestor whose
// middlewares were already captured.
func (m *mux[C]) markRouted() {
	for cur := m; cur != nil; cur = cur.parent {
		cur.routed = true
	}
}

// endpoint wraps a handler with the middlewares registered so far.
func (m *mux[C]) endpoint(h handler.HandlerFunc[C]) http.HandlerFunc {
	fn := handler.Chain(slices.Clone(m.middlewares), h)
	return func(w http.ResponseWriter, r *http.Request) {
		m.serve(w, r, fn)
	}
}

// routeError answers unmatched requests through the error handler.
func (m *mux[C]) routeError(err error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.serve(w, r, func(C) handler.Response {
			return func(http.ResponseWriter, *http.Request) error { return err }
		})
	}
}

func (m *mux[C]) serve(w http.ResponseWriter, r *http.Request, fn handler.HandlerFunc[C]) {
	ww := newResponseWriter(w)
	ctx := m.cfg.newContext(ww, r)

	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.cfg.logger.ErrorContext(r.Context(), "panic after response written",
					logger.Component("router"),
					logger.Error(panicErr),
					logger.Stack(string(panicErr.stack)),
					logger.Path(r.URL.Path),
					logger.Method(r.Method),
					logger.StatusCode(ww.Status()),
				)
				return
			}
			m.cfg.errorHandler(ctx, panicErr)
		}
	}()

	if err := validatePath(r); err != nil {
		m.cfg.errorHandler(ctx, err)
		return
	}

	resp := fn(ctx)
	if resp == nil {
		m.cfg.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := resp(ww, ctx.Request()); err != nil {
		if ww.Written() {
			m.cfg.logger.ErrorContext(r.Context(), "error after response written",
				logger.Component("router"),
				logger.Error(err),
				logger.Path(r.URL.Path),
				logger.Method(r.Method),
				logger.StatusCode(ww.Status()),
			)
			return
		}
		m.cfg.errorHandler(ctx, err)
	}
}

// validatePath rejects paths and route parameters that do not decode to valid UTF-8.
// Parameters are still escaped only when chi routed on the raw path.
func validatePath(r *http.Request) error {
	if !utf8.ValidString(r.URL.Path) {
		return &MalformedPathError{Path: r.URL.EscapedPath(), Err: ErrInvalidUTF8}
	}

	rctx := chi.RouteContext(r.Context())
	if rctx == nil || r.URL.RawPath == "" {
		return nil
	}
	for _, v := range rctx.URLParams.Values {
		dec, err := url.PathUnescape(v)
		if err != nil {
			return &MalformedPathError{Path: r.URL.EscapedPath(), Err: err}
		}
		if !utf8.ValidString(dec) {
			return &MalformedPathError{Path: r.URL.EscapedPath(), Err: ErrInvalidUTF8}
		}
	}
	return nil
}
