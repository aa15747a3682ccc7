package apperr

import (
	"errors"
	"net/http"
	"net/url"
)

type malformedURI interface {
	MalformedURI() bool
}

type coder interface {
	Code() string
}

type statusCoder interface {
	StatusCode() int
}

type redirectPather interface {
	RedirectPath() string
}

type stacker interface {
	Stack() []byte
}

// From classifies an arbitrary error. It never returns nil for a non-nil err.
//
// An *Error anywhere in the chain wins. Otherwise URL decoding failures and
// errors reporting MalformedURI() become KindMalformedURI, legacy code strings
// map to their kinds, StatusCode() is kept, a 302/308 status with a
// RedirectPath() becomes KindRedirect, and a Stack() is carried for logging.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	if e, ok := As(err); ok {
		return e
	}

	if isMalformedURI(err) {
		return MalformedURI(err)
	}

	var c coder
	if errors.As(err, &c) {
		switch c.Code() {
		case CodeCSRFMismatch:
			return &Error{Kind: KindCSRFMismatch, Status: http.StatusForbidden, Message: err.Error(), Err: err}
		case CodeBlacklistedIP:
			return &Error{Kind: KindBlacklistedIP, Status: http.StatusForbidden, Message: err.Error(), Err: err}
		}
	}

	out := &Error{Kind: KindGeneric, Message: err.Error(), Err: err}

	var sc statusCoder
	if errors.As(err, &sc) {
		out.Status = sc.StatusCode()
	}

	var rp redirectPather
	if errors.As(err, &rp) {
		out.Path = rp.RedirectPath()
		if out.IsRedirect() {
			out.Kind = KindRedirect
		}
	}

	var st stacker
	if errors.As(err, &st) {
		out.Stack = string(st.Stack())
	}

	return out
}

func isMalformedURI(err error) bool {
	var m malformedURI
	if errors.As(err, &m) && m.MalformedURI() {
		return true
	}
	var escErr url.EscapeError
	if errors.As(err, &escErr) {
		return true
	}
	var hostErr url.InvalidHostError
	return errors.As(err, &hostErr)
}
