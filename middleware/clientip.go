package middleware

import (
	"context"

	"github.com/forumkit/errgate/core/handler"
	"github.com/forumkit/errgate/pkg/clientip"
)

// clientIPContextKey is used as a key for storing client IP in request context.
type clientIPContextKey struct{}

// ClientIP stores the client address resolved by pkg/clientip in the context.
func ClientIP[C handler.Context]() handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			ctx.SetValue(clientIPContextKey{}, clientip.GetIP(ctx.Request()))
			return next(ctx)
		}
	}
}

// GetClientIP retrieves the client IP address from the request context.
func GetClientIP(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok
}

// clientIPOf returns the stored client IP, resolving it when absent.
func clientIPOf(ctx handler.Context) string {
	if ip, ok := GetClientIP(ctx); ok {
		return ip
	}
	return clientip.GetIP(ctx.Request())
}
