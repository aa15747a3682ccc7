package middleware_test

import (
	"net/http"

	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/core/router"
)

// recordErrors returns an error handler that stores the last error and answers 599.
func recordErrors(target *error) handler.ErrorHandler[*router.Context] {
	return func(ctx *router.Context, err error) {
		*target = err
		ctx.ResponseWriter().WriteHeader(599)
	}
}

func ok(ctx *router.Context) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	}
}
