package middleware

import (
	"context"
	"time"

	"hotelbook/pkg/protocol"
)

// RequestTimeout bounds the context each request runs under. Handlers that
// block, such as room lock acquisition, give up when it expires.
func RequestTimeout(timeout time.Duration) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, line string) protocol.Response {
			if timeout <= 0 {
				return next.Handle(ctx, line)
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next.Handle(ctx, line)
		})
	}
}
