package health

import (
	"net/http"

	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/core/response"
)

// Liveness indicates if the service process is running.
// Always returns "ALIVE" with 200 OK. No dependency checks.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// NoContent returns HTTP 204 without body.
func NoContent[C handler.Context](C) handler.Response {
	return response.Status(http.StatusNoContent)
}
