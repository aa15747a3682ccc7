package handler

import "net/http"

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
// Rendering errors are handled by the framework's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a type-safe HTTP request handler with custom context support.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler handles errors during request processing.
// A terminal error handler must always write a response.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps handlers to add cross-cutting functionality.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// ErrorMiddleware wraps an ErrorHandler. Implementations either answer the
// error themselves or pass it, unchanged, to next.
type ErrorMiddleware[C Context] func(next ErrorHandler[C]) ErrorHandler[C]

// ChainErrors builds a single ErrorHandler from an ordered list of error
// middlewares and the terminal handler that runs when all of them delegate.
// The first middleware sees the error first.
func ChainErrors[C Context](terminal ErrorHandler[C], middlewares ...ErrorMiddleware[C]) ErrorHandler[C] {
	h := terminal
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] == nil {
			continue
		}
		h = middlewares[i](h)
	}
	return h
}

// Chain builds a single handler from a middleware stack and endpoint.
func Chain[C Context](middlewares []Middleware[C], endpoint HandlerFunc[C]) HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
