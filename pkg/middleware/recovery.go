package middleware

import (
	"context"
	"net/http"
	"runtime/debug"

	apperrors "hotelbook/pkg/errors"
	httputil "hotelbook/pkg/http"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/protocol"
)

const MsgInternalServerError = "Internal server error"

// Recovery turns a panic in the wrapped handler into a 500 response so that
// the connection stays usable.
func Recovery(log *logger.Logger) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, line string) (resp protocol.Response) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("Panic recovered",
						"request_id", RequestIDFromContext(ctx),
						"error", err,
						"command", commandName(line),
						"stack", string(debug.Stack()),
					)
					resp = protocol.Fail(apperrors.StatusInternal, MsgInternalServerError)
				}
			}()

			return next.Handle(ctx, line)
		})
	}
}

func HTTPRecovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("Panic recovered",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					_ = httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorResponse{
						Error: MsgInternalServerError,
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
