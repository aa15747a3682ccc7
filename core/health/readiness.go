package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/forumkit/errgate/core/apperr"
	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/core/logger"
	"github.com/forumkit/errgate/core/response"
)

// Readiness runs every dependency check in order. It returns "READY" when all
// pass and fails the request with a 503 error on the first failure.
func Readiness[C handler.Context](log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx C) handler.Response {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.WarnContext(ctx, "readiness check failed",
					logger.Component("health"),
					logger.Error(err),
				)
				return response.Error(apperr.Wrap(err, http.StatusServiceUnavailable))
			}
		}
		return response.String("READY")
	}
}
