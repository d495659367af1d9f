package server

import (
	"net/http"

	"hotelbook/internal/store"
	apperrors "hotelbook/pkg/errors"
	httputil "hotelbook/pkg/http"
	kafkamiddleware "hotelbook/pkg/kafka/middleware"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type HealthResponse struct {
	Status string `json:"status"`
	Server string `json:"server,omitempty"`
}

type LockStats struct {
	Rooms  int `json:"rooms"`
	Locked int `json:"locked"`
}

type StatsResponse struct {
	Store       store.Stats                      `json:"store"`
	Locks       LockStats                        `json:"locks"`
	Connections ConnStats                        `json:"connections"`
	Events      *kafkamiddleware.MetricsSnapshot `json:"events,omitempty"`
}

type StatsSource interface {
	Stats() store.Stats
}

type LockSource interface {
	Len() int
	LockedCount() int
}

type HealthHandler struct {
	server  *Server
	store   StatsSource
	locks   LockSource
	metrics *kafkamiddleware.Metrics
	log     *logger.Logger
}

// NewHealthHandler builds the admin endpoints. metrics may be nil when event
// publishing is disabled.
func NewHealthHandler(srv *Server, st StatsSource, locks LockSource, metrics *kafkamiddleware.Metrics, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		server:  srv,
		store:   st,
		locks:   locks,
		metrics: metrics,
		log:     log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !h.server.Listening() {
		h.log.Warn("Readiness check failed", "path", r.URL.Path)
		if err := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Server: "not listening",
		}); err != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ready",
		Server: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := StatsResponse{
		Store: h.store.Stats(),
		Locks: LockStats{
			Rooms:  h.locks.Len(),
			Locked: h.locks.LockedCount(),
		},
		Connections: h.server.Stats(),
	}
	if h.metrics != nil {
		snap := h.metrics.Snapshot()
		resp.Events = &snap
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Stats", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/stats", h.Stats)
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := httputil.WriteError(w, apperrors.NotFound("Route")); err != nil {
			h.log.Error("failed to write JSON response", "handler", "NotFound", "operation", "WriteError", "error", err)
		}
	})
}

// HTTPHandler returns the routes wrapped in recovery and request logging.
func (h *HealthHandler) HTTPHandler() http.Handler {
	router := httprouter.New()
	h.RegisterRoutes(router)

	var handler http.Handler = router
	handler = middleware.HTTPRequestLogging(h.log)(handler)
	handler = middleware.HTTPRecovery(h.log)(handler)
	return handler
}
