package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"net/http"

	"github.com/forumkit/errgate/core/apperr"
	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/core/response"
)

type csrfContextKey struct{}

// CSRFConfig configures the CSRF middleware.
type CSRFConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// CookieName holds the token (default: "_csrf")
	CookieName string
	// HeaderName carries the echoed token on unsafe requests (default: "X-CSRF-Token")
	HeaderName string
	// FormField carries the echoed token in form posts (default: "_csrf")
	FormField string
	// CookiePath scopes the token cookie (default: "/")
	CookiePath string
	// Secure marks the cookie as HTTPS only
	Secure bool
	// SameSite mode for the cookie (default: http.SameSiteLaxMode)
	SameSite http.SameSite
	// Generator creates new tokens (default: crypto/rand text)
	Generator func() string
}

// CSRF creates a double-submit cookie CSRF middleware with default configuration.
func CSRF[C handler.Context]() handler.Middleware[C] {
	return CSRFWithConfig[C](CSRFConfig{})
}

// CSRFWithConfig creates a CSRF middleware with custom configuration.
// Requests with unsafe methods whose echoed token does not match the cookie
// fail with apperr.CSRFMismatch.
func CSRFWithConfig[C handler.Context](cfg CSRFConfig) handler.Middleware[C] {
	if cfg.CookieName == "" {
		cfg.CookieName = "_csrf"
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-CSRF-Token"
	}
	if cfg.FormField == "" {
		cfg.FormField = "_csrf"
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = "/"
	}
	if cfg.SameSite == 0 {
		cfg.SameSite = http.SameSiteLaxMode
	}
	if cfg.Generator == nil {
		cfg.Generator = rand.Text
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			var token string
			if c, err := req.Cookie(cfg.CookieName); err == nil {
				token = c.Value
			}

			if !isSafeMethod(req.Method) {
				if token == "" {
					return response.Error(apperr.CSRFMismatch("missing csrf cookie"))
				}
				supplied := req.Header.Get(cfg.HeaderName)
				if supplied == "" {
					supplied = req.FormValue(cfg.FormField)
				}
				if subtle.ConstantTimeCompare([]byte(token), []byte(supplied)) != 1 {
					return response.Error(apperr.CSRFMismatch("invalid csrf token"))
				}
			}

			if token == "" {
				token = cfg.Generator()
				http.SetCookie(ctx.ResponseWriter(), &http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     cfg.CookiePath,
					Secure:   cfg.Secure,
					HttpOnly: true,
					SameSite: cfg.SameSite,
				})
			}

			ctx.SetValue(csrfContextKey{}, token)
			return next(ctx)
		}
	}
}

// CSRFToken returns the request's CSRF token, or "" when the middleware did not run.
func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfContextKey{}).(string)
	return token
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
