package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/forumkit/errgate/core/handler"
)

var (
	// Routing errors handed to the error handler. They carry a status code.
	ErrNotFound         error = &statusError{status: http.StatusNotFound, msg: "not found"}
	ErrMethodNotAllowed error = &statusError{status: http.StatusMethodNotAllowed, msg: "method not allowed"}

	// Programming errors
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrNilResponse      = errors.New("nil response")
	ErrNilRouter        = errors.New("nil router")
	ErrNilSubrouter     = errors.New("nil subrouter")

	// ErrInvalidUTF8 is wrapped by MalformedPathError when a decoded path is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8 sequence")
)

type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string   { return e.msg }
func (e *statusError) StatusCode() int { return e.status }

// MalformedPathError reports a request path or route parameter that cannot be decoded.
type MalformedPathError struct {
	Path string
	Err  error
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("URI malformed: %s: %v", e.Path, e.Err)
}

func (e *MalformedPathError) Unwrap() error { return e.Err }

// MalformedURI marks the error for apperr.From.
func (e *MalformedPathError) MalformedURI() bool { return true }

// statusCode is an unexported interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// defaultErrorHandler provides default error handling.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) && sc.StatusCode() >= 400 && sc.StatusCode() < 600 {
		status = sc.StatusCode()
	}
	http.Error(ctx.ResponseWriter(), http.StatusText(status), status)
}

// PanicError interface allows external error handlers to detect and handle panics.
// When a panic is recovered by the router, it's wrapped in an error that implements
// this interface, providing access to the original panic value and stack trace.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
