package middleware

import (
	"context"

	"hotelbook/pkg/protocol"
)

// Handler answers one request line.
type Handler interface {
	Handle(ctx context.Context, line string) protocol.Response
}

type HandlerFunc func(ctx context.Context, line string) protocol.Response

func (f HandlerFunc) Handle(ctx context.Context, line string) protocol.Response {
	return f(ctx, line)
}

type Middleware func(Handler) Handler

// Chain wraps h so that the first middleware is the outermost.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
