package errhandler

import (
	"net/http"

	"github.com/forumkit/errgate/core/apperr"
	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/core/logger"
	"github.com/forumkit/errgate/core/response"
	"github.com/forumkit/errgate/core/sanitizer"
)

// Errors returns the terminal error handler. It always writes a response.
//
// CSRF mismatches get a bare 403 and blacklisted clients a plain-text 403
// carrying the message verbatim. A 302 or 308 redirect signal with a target
// redirects there, or for API calls answers the target as a JSON string.
// Everything else is logged with its stack and answered with the error's
// status, or 500 when it has none.
func Errors[C handler.Context](opts ...Option) handler.ErrorHandler[C] {
	o := newOptions(opts)

	return func(ctx C, err error) {
		if err == nil {
			err = apperr.New(http.StatusInternalServerError, "")
		}

		r := ctx.Request()
		path := r.URL.EscapedPath()
		e := apperr.From(err)

		switch {
		case e.Kind == apperr.KindCSRFMismatch:
			o.logger.ErrorContext(ctx, "csrf token mismatch",
				logger.Component("errhandler"),
				logger.Path(sanitizer.SingleLine(path)),
				logger.ErrorCode(e.Code()),
				logger.Error(err),
			)
			write(ctx, o, response.Status(http.StatusForbidden))

		case e.Kind == apperr.KindBlacklistedIP:
			write(ctx, o, response.StringWithStatus(e.Error(), http.StatusForbidden))

		case e.IsRedirect():
			if o.isAPI(ctx) {
				write(ctx, o, response.JSONWithStatus(e.Path, e.Status))
				return
			}
			write(ctx, o, response.Redirect(e.Path))

		default:
			status := e.Status
			if status < 200 || status > 599 {
				status = http.StatusInternalServerError
			}

			o.logger.ErrorContext(ctx, "request failed",
				logger.Component("errhandler"),
				logger.Path(sanitizer.SingleLine(path)),
				logger.StatusCode(status),
				logger.ErrorKind(e.Kind.String()),
				logger.Stack(e.Stack),
				logger.Error(err),
			)

			if o.isAPI(ctx) {
				write(ctx, o, response.JSONWithStatus(map[string]string{
					"path":  sanitizer.EscapeHTML(path),
					"error": e.Error(),
				}, status))
				return
			}
			renderPage(ctx, o, PageError, PageData{
				Status: status,
				Path:   sanitizer.EscapeHTML(path),
				Error:  sanitizer.EscapeHTML(e.Error()),
			})
		}
	}
}

// New returns the full error handler chain: URIErrors in front of Errors,
// both configured with opts.
func New[C handler.Context](opts ...Option) handler.ErrorHandler[C] {
	return handler.ChainErrors(Errors[C](opts...), URIErrors[C](opts...))
}
