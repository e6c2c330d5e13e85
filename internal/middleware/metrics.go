package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
)

// RPCObserver records finished RPC calls.
type RPCObserver interface {
	ObserveRPC(procedure, code string, elapsed time.Duration)
}

// MetricsInterceptor returns a Connect interceptor that reports every call's
// procedure, result code and duration to obs.
func MetricsInterceptor(obs RPCObserver) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			obs.ObserveRPC(req.Spec().Procedure, codeLabel(err), time.Since(start))
			return resp, err
		}
	}
}

func codeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return connect.CodeOf(err).String()
}
