package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, duration and, on failure, the error code.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					logger.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"duration_ms", duration,
					)
				} else {
					logger.Error("RPC error",
						"procedure", procedure,
						"code", connect.CodeOf(err),
						"error", err,
						"duration_ms", duration,
					)
				}
			} else {
				logger.Info("RPC ok",
					"procedure", procedure,
					"duration_ms", duration,
				)
			}

			return resp, err
		}
	}
}
