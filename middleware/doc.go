// Package middleware provides the request middlewares that feed the error
// handler chain: they either record request facts the error handlers read
// (API flag, request id, client IP, CSRF token) or raise the classified
// errors the handlers answer (CSRF mismatch, blacklisted IP).
//
// All handler middlewares follow the same pattern:
//   - Generic functions that accept a handler.Context type parameter
//   - Configuration structs for customization
//   - Default constructors for common use cases
//   - WithConfig constructors for advanced configuration
//   - Context helpers for retrieving stored values
//
// # API Flag
//
// APIFlag is a plain net/http middleware so it also covers requests chi
// could not route. It marks requests under relativePath + "/api":
//
//	r := router.New[*router.Context](
//		router.WithHTTPMiddleware[*router.Context](middleware.APIFlag("/forum")),
//	)
//
//	if middleware.IsAPI(ctx) {
//		return response.JSON(data)
//	}
//
// # CSRF
//
// CSRF implements the double-submit cookie pattern. Safe methods issue the
// token cookie; unsafe methods must echo it in the X-CSRF-Token header or the
// _csrf form field. A mismatch fails the request with apperr.CSRFMismatch,
// which the error responder answers with a bare 403.
//
//	r.Use(middleware.CSRF[*router.Context]())
//	token := middleware.CSRFToken(ctx)
//
// # Blacklist
//
// Blacklist rejects requests from listed client addresses with
// apperr.BlacklistedIP. Stores are pluggable:
//
//	store, _ := middleware.NewMemoryBlacklist("203.0.113.7", "198.51.100.0/24")
//	r.Use(middleware.Blacklist[*router.Context](store))
//
// Store failures fail open and are logged at warn level.
//
// # Request ID and Logging
//
//	r.Use(middleware.RequestID[*router.Context]())
//	r.Use(middleware.LoggingWithLogger[*router.Context](log))
//
// RequestIDExtractor plugs the id into every log record:
//
//	log := logger.New(logger.WithContextExtractors(middleware.RequestIDExtractor))
package middleware
