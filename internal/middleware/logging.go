// Package middleware provides Connect interceptors shared by all services.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that writes one log line
// per call with the procedure, result code and duration.
//
// Caller mistakes such as not_found or invalid_argument are logged at Warn
// with the error message only. Internal and unknown failures are logged at
// Error with the full wrapped error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("code", codeLabel(err)),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			level, msg := slog.LevelInfo, "RPC ok"
			if err != nil {
				level, msg = slog.LevelError, "RPC error"
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && callerFault(connectErr.Code()) {
					level = slog.LevelWarn
					attrs = append(attrs, slog.String("error", connectErr.Message()))
				} else {
					attrs = append(attrs, slog.Any("error", err))
				}
			}
			slog.LogAttrs(ctx, level, msg, attrs...)

			return resp, err
		}
	}
}

func callerFault(code connect.Code) bool {
	switch code {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeDataLoss:
		return false
	}
	return true
}
