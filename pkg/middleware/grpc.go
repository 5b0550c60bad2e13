package middleware

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fekuna/agritrace-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// ContextInterceptor copies the caller identity header into the request context.
func ContextInterceptor(header string, store func(ctx context.Context, id string) context.Context) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if vals := md.Get(header); len(vals) > 0 {
				if id := strings.TrimSpace(vals[0]); id != "" {
					ctx = store(ctx, id)
				}
			}
		}
		return handler(ctx, req)
	}
}

// LoggingInterceptor logs every unary call with its status code and latency.
func LoggingInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("latency", time.Since(start)),
		}
		switch code {
		case codes.OK:
			log.Debug("grpc request", fields...)
		case codes.Internal, codes.Unknown, codes.Unavailable:
			log.Error("grpc request failed", append(fields, zap.Error(err))...)
		default:
			log.Info("grpc request rejected", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}

// RecoveryInterceptor turns handler panics into Internal errors.
func RecoveryInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in grpc handler",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

// MetricsInterceptor reports the status code of each call to observe.
func MetricsInterceptor(observe func(method, code string)) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		observe(info.FullMethod, status.Code(err).String())
		return resp, err
	}
}

// IdentityInterceptor rejects calls to the listed methods that carry no caller identity.
func IdentityInterceptor(identity func(ctx context.Context) string, methods ...string) grpc.UnaryServerInterceptor {
	protected := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		protected[m] = struct{}{}
	}
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if _, ok := protected[info.FullMethod]; ok && strings.TrimSpace(identity(ctx)) == "" {
			return nil, status.Error(codes.Unauthenticated, "missing caller identity")
		}
		return handler(ctx, req)
	}
}
