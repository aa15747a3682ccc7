package errhandler

import (
	"net/http"

	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/core/logger"
	"github.com/forumkit/errgate/core/response"
)

type writtenReporter interface {
	Written() bool
}

// write sends resp. A failure before anything was written is answered with a
// plain 500 so the client always gets exactly one response.
func write[C handler.Context](ctx C, o *options, resp handler.Response) {
	w := ctx.ResponseWriter()
	err := resp(w, ctx.Request())
	if err == nil {
		return
	}

	o.logger.ErrorContext(ctx, "error response failed",
		logger.Component("errhandler"),
		logger.Error(err),
	)
	if wr, ok := w.(writtenReporter); ok && wr.Written() {
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// renderPage builds the page header, then renders the named page. Header or
// page failures fall back to the unstyled page with the same status and fields.
func renderPage[C handler.Context](ctx C, o *options, name string, data PageData) {
	h, err := o.builder.Build(ctx, ctx.Request())
	if err != nil {
		o.logger.ErrorContext(ctx, "page header build failed",
			logger.Component("errhandler"),
			logger.Error(err),
		)
		write(ctx, o, response.TemplWithStatus(FallbackPage(data), data.Status))
		return
	}
	data.Header = h

	page := response.TemplWithStatus(o.pages.Page(name, data), data.Status)
	if err := page(ctx.ResponseWriter(), ctx.Request()); err != nil {
		o.logger.ErrorContext(ctx, "error page render failed",
			logger.Component("errhandler"),
			logger.Error(err),
		)
		write(ctx, o, response.TemplWithStatus(FallbackPage(data), data.Status))
	}
}
