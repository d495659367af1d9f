package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"hotelbook/pkg/logger"
	"hotelbook/pkg/protocol"

	"github.com/google/uuid"
)

type contextKey string

const (
	RequestIDKey  contextKey = "request_id"
	ClientAddrKey contextKey = "client_addr"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

func WithClientAddr(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, ClientAddrKey, addr)
}

func ClientAddrFromContext(ctx context.Context) string {
	if addr, ok := ctx.Value(ClientAddrKey).(string); ok {
		return addr
	}
	return ""
}

// RequestLogging logs every request with its status and duration. Only the
// command name is logged; the trailing tokens may hold credentials.
func RequestLogging(log *logger.Logger) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, line string) protocol.Response {
			start := time.Now()

			requestID := RequestIDFromContext(ctx)
			if requestID == "" {
				requestID = uuid.NewString()
				ctx = WithRequestID(ctx, requestID)
			}
			command := commandName(line)

			log.Debug("Request started",
				"request_id", requestID,
				"command", command,
				"client", ClientAddrFromContext(ctx),
			)

			resp := next.Handle(ctx, line)

			log.Info("Request completed",
				"request_id", requestID,
				"command", command,
				"status", resp.Status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return resp
		})
	}
}

func commandName(line string) string {
	tokens := strings.Fields(line)
	switch {
	case len(tokens) == 0:
		return ""
	case len(tokens) == 1:
		return strings.ToUpper(tokens[0])
	}

	verb := strings.ToUpper(tokens[0])
	switch verb {
	case "CREATE", "UPDATE", "REMOVE", "LIST":
		return verb + " " + strings.ToUpper(tokens[1])
	}
	return verb
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// HTTPRequestLogging is the health server's counterpart of RequestLogging.
func HTTPRequestLogging(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			r = r.WithContext(WithRequestID(r.Context(), requestID))

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			log.Debug("HTTP request completed",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
