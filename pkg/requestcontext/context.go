// Package requestcontext provides HTTP-independent accessors for
// request-scoped values. Middleware sets them; services and loggers read them
// without importing net/http.
package requestcontext

import "context"

type (
	requestIDKey struct{}
	userAgentKey struct{}
	clientIPKey  struct{}
)

// RequestID retrieves the correlation ID assigned by the RequestID middleware.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a correlation ID into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// UserAgent retrieves the raw User-Agent header captured by middleware.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(userAgentKey{}).(string); ok {
		return ua
	}
	return ""
}

// WithUserAgent injects the raw User-Agent string into the context.
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, userAgentKey{}, ua)
}

// ClientIP retrieves the remote address captured by middleware.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

// WithClientIP injects the remote address into the context.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}
