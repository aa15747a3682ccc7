// Package handler provides the core request-processing types shared by the
// router, the response helpers, the middlewares and the error handlers.
//
// Handlers return a Response closure instead of writing directly. When a
// Response returns an error (or a handler panics) the router hands the error
// to an ErrorHandler:
//
//	type Response func(w http.ResponseWriter, r *http.Request) error
//	type HandlerFunc[C Context] func(ctx C) Response
//	type ErrorHandler[C Context] func(ctx C, err error)
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//	type ErrorMiddleware[C Context] func(next ErrorHandler[C]) ErrorHandler[C]
//
// # Error chains
//
// Error handling is composed from an explicit, typed list. Each ErrorMiddleware
// either writes a response or delegates to the next handler; the terminal
// ErrorHandler always writes one:
//
//	onError := handler.ChainErrors(
//		errhandler.Errors[*router.Context](opts...),    // terminal
//		errhandler.URIErrors[*router.Context](opts...), // runs first
//	)
//	r := router.New[*router.Context](router.WithErrorHandler(onError))
//
// Registration order, not function shape, decides which handlers take part in
// error processing.
package handler
