// Package logger builds slog loggers and provides attribute helpers for
// consistent structured logging.
//
//	log := logger.New(
//		logger.WithProduction("errgate"),
//		logger.WithContextExtractors(middleware.RequestIDExtractor),
//	)
//	log.ErrorContext(ctx, "request failed",
//		logger.Path(r.URL.Path),
//		logger.Error(err),
//	)
//
// Helpers return an empty slog.Attr for empty inputs, which slog drops.
package logger
