package apperr

import (
	"errors"
	"net/http"
)

// Error is a classified request-handling error.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, or the redirect status for KindRedirect; 0 when unset
	Path    string // redirect target for KindRedirect
	Message string
	Stack   string // for logs only
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Status != 0 {
		return http.StatusText(e.Status)
	}
	return e.Kind.String()
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the carried status, or 0 when unset.
func (e *Error) StatusCode() int {
	return e.Status
}

// Code returns the legacy wire code for the kind, if it has one.
func (e *Error) Code() string {
	switch e.Kind {
	case KindCSRFMismatch:
		return CodeCSRFMismatch
	case KindBlacklistedIP:
		return CodeBlacklistedIP
	default:
		return ""
	}
}

// IsRedirect reports whether e is a usable redirect signal: a 302 or 308
// status together with a non-empty target path.
func (e *Error) IsRedirect() bool {
	if e.Path == "" {
		return false
	}
	return e.Status == http.StatusFound || e.Status == http.StatusPermanentRedirect
}

// MalformedURI wraps a URI decoding failure.
func MalformedURI(err error) *Error {
	msg := "URI malformed"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Kind: KindMalformedURI, Message: msg, Err: err}
}

// CSRFMismatch reports an invalid CSRF token.
func CSRFMismatch(message string) *Error {
	if message == "" {
		message = "invalid csrf token"
	}
	return &Error{Kind: KindCSRFMismatch, Status: http.StatusForbidden, Message: message}
}

// BlacklistedIP reports a request from a blacklisted address.
// The message is sent to the client verbatim.
func BlacklistedIP(message string) *Error {
	return &Error{Kind: KindBlacklistedIP, Status: http.StatusForbidden, Message: message}
}

// Redirect builds a redirect-as-error signal. Deep call stacks return it to
// abort processing and send the client to path. Only 302 and 308 are honoured
// as redirects; anything else is answered as a generic error.
func Redirect(status int, path string) *Error {
	return &Error{Kind: KindRedirect, Status: status, Path: path, Message: http.StatusText(status)}
}

// New creates a generic error with the given status and message.
func New(status int, message string) *Error {
	return &Error{Kind: KindGeneric, Status: status, Message: message, Stack: callers(3)}
}

// Wrap turns err into a generic error with the given status.
// Returns nil for nil errors.
func Wrap(err error, status int) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindGeneric, Status: status, Message: err.Error(), Err: err, Stack: callers(3)}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
