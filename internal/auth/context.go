package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"
)

type ctxKey string

const (
	callerKey ctxKey = "caller_id"

	// CallerHeader carries the caller identity in gRPC metadata.
	CallerHeader = "x-user-id"
)

// WithCaller stores the caller identity, as the context interceptor does.
func WithCaller(ctx context.Context, callerID string) context.Context {
	return context.WithValue(ctx, callerKey, callerID)
}

// GetCallerID returns the identity the interceptor put on the context,
// falling back to incoming metadata. Blank identities read as "".
func GetCallerID(ctx context.Context) string {
	if val, ok := ctx.Value(callerKey).(string); ok {
		if val = strings.TrimSpace(val); val != "" {
			return val
		}
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(CallerHeader); len(val) > 0 {
			return strings.TrimSpace(val[0])
		}
	}
	return ""
}
