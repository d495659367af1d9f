package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hotelbook/internal/server"
	"hotelbook/pkg/config"
	kafkamiddleware "hotelbook/pkg/kafka/middleware"
	"hotelbook/pkg/middleware"

	"golang.org/x/sync/errgroup"
)

// Diagnostics feeds the /stats endpoint. Metrics may be nil.
type Diagnostics struct {
	Store   server.StatsSource
	Locks   server.LockSource
	Metrics *kafkamiddleware.Metrics
}

type Application struct {
	cfg         *config.Config
	server      *server.Server
	health      *http.Server
	healthAddr  net.Addr
	rateLimiter *middleware.ClientRateLimiter
	closers     []func() error
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

func (a *Application) SetApp(appHandler middleware.Handler, diag Diagnostics) {
	a.setAppServer(appHandler)
	a.setHealthServer(diag)
}

// OnShutdown registers fn to run after both servers have stopped.
func (a *Application) OnShutdown(fn func() error) {
	a.closers = append(a.closers, fn)
}

func (a *Application) setAppServer(appHandler middleware.Handler) {
	mws := []middleware.Middleware{
		middleware.Recovery(a.cfg.Log),
		middleware.RequestLogging(a.cfg.Log),
	}
	if a.cfg.RateLimitEnabled {
		a.rateLimiter = middleware.NewClientRateLimiter(a.cfg.RateLimitRequests, a.cfg.RateLimitWindow, a.cfg.Log)
		mws = append(mws, middleware.RateLimit(a.rateLimiter))
		a.cfg.Log.Info("Per-client rate limiting enabled",
			"requests", a.cfg.RateLimitRequests,
			"window", a.cfg.RateLimitWindow,
		)
	}
	mws = append(mws, middleware.RequestTimeout(a.cfg.RequestTimeout))

	a.server = server.New(middleware.Chain(appHandler, mws...), a.cfg)
	a.cfg.Log.Info("TCP server configured", "port", a.cfg.Port, "max_connections", a.cfg.MaxConnections)
}

func (a *Application) setHealthServer(diag Diagnostics) {
	if a.cfg.HealthPort == "" {
		a.cfg.Log.Info("Health endpoints disabled")
		return
	}

	healthHandler := server.NewHealthHandler(a.server, diag.Store, diag.Locks, diag.Metrics, a.cfg.Log)
	a.health = &http.Server{
		Addr:         ":" + a.cfg.HealthPort,
		Handler:      healthHandler.HTTPHandler(),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)", "port", a.cfg.HealthPort)
}

// Listening reports whether the TCP server is accepting connections.
func (a *Application) Listening() bool {
	return a.server != nil && a.server.Listening()
}

func (a *Application) Addr() net.Addr {
	return a.server.Addr()
}

// HealthAddr is nil when the health server is disabled or not started.
func (a *Application) HealthAddr() net.Addr {
	return a.healthAddr
}

func (a *Application) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil {
		a.cfg.Log.Fatal("Server failed", "error", err)
	}
}

// Start serves until ctx is done or one of the servers fails, then shuts
// everything down gracefully.
func (a *Application) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+a.cfg.Port)
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", a.cfg.Port, err)
	}

	var healthLn net.Listener
	if a.health != nil {
		healthLn, err = net.Listen("tcp", a.health.Addr)
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("listen on health port %s: %w", a.cfg.HealthPort, err)
		}
		a.healthAddr = healthLn.Addr()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.server.Serve(gctx, ln)
	})

	if a.health != nil {
		g.Go(func() error {
			a.cfg.Log.Info("Starting health server", "address", healthLn.Addr().String())
			if err := a.health.Serve(healthLn); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			a.cfg.Log.Info("Shutdown signal received")
		}
		a.gracefulShutdown()
		return nil
	})

	return g.Wait()
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("TCP server shutdown timed out, connections closed", "error", err)
	}

	if a.health != nil {
		if err := a.health.Shutdown(ctx); err != nil {
			a.cfg.Log.Error("Health server shutdown failed", "error", err)
			if err := a.health.Close(); err != nil {
				a.cfg.Log.Error("Could not stop health server", "error", err)
			}
		}
	}

	a.cfg.Log.Info("Stopping background workers...")
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			a.cfg.Log.Error("Shutdown hook failed", "error", err)
		}
	}
	a.cfg.Log.Info("Background workers stopped")

	a.cfg.Log.Info("Server stopped gracefully")
}
