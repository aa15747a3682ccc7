package router

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
)

// Context is the default handler.Context implementation.
// Values stored with SetValue become part of the request's context.
type Context struct {
	w http.ResponseWriter
	r *http.Request
}

// NewContext creates a Context for the given writer and request.
func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{w: w, r: r}
}

func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

func (c *Context) Err() error {
	return c.r.Context().Err()
}

func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

// Request returns the HTTP request associated with this context.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the HTTP response writer associated with this context.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the decoded value of a route parameter.
// Routing on the raw path leaves parameters escaped; they are decoded here.
func (c *Context) Param(key string) string {
	raw := chi.URLParam(c.r, key)
	if c.r.URL.RawPath == "" {
		return raw
	}
	if dec, err := url.PathUnescape(raw); err == nil {
		return dec
	}
	return raw
}

// SetValue stores a request-scoped value.
func (c *Context) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}
