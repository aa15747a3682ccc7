package middleware

import (
	"context"
	"net/http"
	"strings"
)

type apiFlagContextKey struct{}

// APIFlag marks requests whose path starts with relativePath + "/api" as API
// calls. Error handlers answer marked requests with JSON.
func APIFlag(relativePath string) func(http.Handler) http.Handler {
	prefix := strings.TrimSuffix(relativePath, "/") + "/api"
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, prefix) {
				r = r.WithContext(WithAPI(r.Context()))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithAPI returns a copy of ctx flagged as an API call.
func WithAPI(ctx context.Context) context.Context {
	return context.WithValue(ctx, apiFlagContextKey{}, true)
}

// IsAPI reports whether the request was flagged as an API call.
func IsAPI(ctx context.Context) bool {
	v, _ := ctx.Value(apiFlagContextKey{}).(bool)
	return v
}
