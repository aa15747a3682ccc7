package response

import (
	"net/http"

	"github.com/forumkit/errgate/core/handler"
)

// Error returns a response that fails with err, handing it to the router's
// error handler chain. Upstream code uses it to raise classified errors such
// as apperr.Redirect or apperr.CSRFMismatch.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
