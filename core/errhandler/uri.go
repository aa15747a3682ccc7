package errhandler

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/forumkit/errgate/core/apperr"
	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/core/logger"
	"github.com/forumkit/errgate/core/response"
	"github.com/forumkit/errgate/core/sanitizer"
)

// BadRequestTitle is the translation token API clients get for unrecoverable
// malformed URIs.
const BadRequestTitle = "[[global:400.title]]"

var (
	topicPrefix    = regexp.MustCompile(`^/topic/\d+/`)
	categoryPrefix = regexp.MustCompile(`^/category/\d+/`)
)

// OutcomeKind is the decision taken for a request error.
type OutcomeKind uint8

const (
	// OutcomeDelegate leaves the error to the next handler.
	OutcomeDelegate OutcomeKind = iota
	// OutcomeRedirect sends the client to Outcome.Target.
	OutcomeRedirect
	// OutcomeBadRequest answers 400.
	OutcomeBadRequest
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDelegate:
		return "delegate"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeBadRequest:
		return "bad_request"
	default:
		return "unknown"
	}
}

// Outcome is the result of ClassifyURIError.
type Outcome struct {
	Kind   OutcomeKind
	Target string // redirect target, set for OutcomeRedirect
}

// ClassifyURIError decides how to answer err for a request to path.
//
// Only malformed URI errors are handled. A path under /topic/<id>/ or
// /category/<id>/ (after relativePath) is redirected to that prefix, keeping
// relativePath in front. Anything else is a bad request.
func ClassifyURIError(err error, path, relativePath string) Outcome {
	if err == nil || apperr.From(err).Kind != apperr.KindMalformedURI {
		return Outcome{Kind: OutcomeDelegate}
	}

	rel := strings.TrimSuffix(relativePath, "/")
	local := path
	if rel != "" && strings.HasPrefix(path, rel+"/") {
		local = strings.TrimPrefix(path, rel)
	}

	if m := topicPrefix.FindString(local); m != "" {
		return Outcome{Kind: OutcomeRedirect, Target: rel + m}
	}
	if m := categoryPrefix.FindString(local); m != "" {
		return Outcome{Kind: OutcomeRedirect, Target: rel + m}
	}
	return Outcome{Kind: OutcomeBadRequest}
}

// URIErrors returns the malformed URI error middleware. Errors it does not
// handle reach next unchanged.
func URIErrors[C handler.Context](opts ...Option) handler.ErrorMiddleware[C] {
	o := newOptions(opts)

	return func(next handler.ErrorHandler[C]) handler.ErrorHandler[C] {
		return func(ctx C, err error) {
			r := ctx.Request()
			path := r.URL.EscapedPath()

			out := ClassifyURIError(err, path, o.relativePath)
			switch out.Kind {
			case OutcomeRedirect:
				write(ctx, o, response.Redirect(out.Target))

			case OutcomeBadRequest:
				o.logger.WarnContext(ctx, "bad request",
					logger.Component("errhandler"),
					logger.Path(sanitizer.SingleLine(path)),
					logger.Error(err),
				)
				if strings.HasPrefix(path, o.relativePath+"/api") {
					write(ctx, o, response.JSONWithStatus(map[string]string{"error": BadRequestTitle}, http.StatusBadRequest))
					return
				}
				renderPage(ctx, o, PageBadRequest, PageData{
					Status: http.StatusBadRequest,
					Error:  sanitizer.EscapeHTML(apperr.From(err).Error()),
				})

			default:
				next(ctx, err)
			}
		}
	}
}
