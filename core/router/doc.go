// Package router adapts type-safe handler.HandlerFunc handlers onto a chi
// routing tree.
//
// Handlers return a handler.Response. When the response fails, the handler
// panics, the route is missing, or the request path cannot be decoded, the
// router hands an error to the configured handler.ErrorHandler:
//
//	onError := handler.ChainErrors(
//		errhandler.Errors[*router.Context](errhandler.WithLogger(log)),
//		errhandler.URIErrors[*router.Context](errhandler.WithLogger(log)),
//	)
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(onError),
//		router.WithLogger[*router.Context](log),
//	)
//	r.Get("/topic/{tid}/*", showTopic)
//
// # Malformed paths
//
// Before a handler runs, the request path and every route parameter are
// percent-decoded and checked for valid UTF-8. Failures are reported as
// *MalformedPathError, which apperr.From classifies as a malformed URI. The
// same check runs for unmatched routes, so a mangled topic link is reported
// as malformed rather than as not found.
//
// # Panics
//
// Panics are recovered and passed on as a PanicError carrying the panic value
// and the stack captured at the panic point. If the response was already
// written the panic is only logged.
package router
