// Package server accepts client connections and feeds their request lines to
// a middleware.Handler.
package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"hotelbook/pkg/config"
	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/middleware"
	"hotelbook/pkg/protocol"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

const (
	MsgRequestTooLong = "Request too long"

	lingerTimeout  = 500 * time.Millisecond
	lingerMaxBytes = 64 << 10
)

var ErrServerClosed = errors.New("server: closed")

type ConnStats struct {
	Active int64 `json:"active_connections"`
	Served int64 `json:"served_connections"`
}

// Server runs one goroutine per connection, at most MaxConnections at a time.
// Further clients wait in the listen backlog until a worker frees up.
type Server struct {
	cfg     *config.Config
	handler middleware.Handler
	workers *semaphore.Weighted

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
	closing  atomic.Bool

	// cancels the context every request runs under; only Shutdown calls it
	cancelRequests context.CancelFunc

	active atomic.Int64
	served atomic.Int64
}

func New(handler middleware.Handler, cfg *config.Config) *Server {
	return &Server{
		cfg:     cfg,
		handler: handler,
		workers: semaphore.NewWeighted(int64(cfg.MaxConnections)),
		conns:   make(map[net.Conn]struct{}),
	}
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.cfg.Port)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done or Shutdown is called.
// It returns nil after a clean stop. Requests keep ctx's values but not its
// cancellation: a request in flight when ctx ends runs to completion unless
// Shutdown gives up waiting for it.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.closing.Load() {
		s.mu.Unlock()
		_ = ln.Close()
		return ErrServerClosed
	}
	s.listener = ln
	reqBase, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancelRequests = cancel
	s.mu.Unlock()

	s.cfg.Log.Info("TCP server listening", "address", ln.Addr().String(), "workers", s.cfg.MaxConnections)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = ln.Close()
		case <-stop:
		}
	}()

	for {
		if err := s.workers.Acquire(ctx, 1); err != nil {
			return nil
		}

		conn, err := ln.Accept()
		if err != nil {
			s.workers.Release(1)
			if s.closing.Load() || ctx.Err() != nil {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				s.cfg.Log.Warn("Temporary accept error", "error", err)
				time.Sleep(50 * time.Millisecond)
				continue
			}
			return err
		}

		if !s.track(conn) {
			s.workers.Release(1)
			_ = conn.Close()
			return nil
		}
		go s.serveConn(reqBase, conn)
	}
}

// Listening reports whether Serve is accepting connections.
func (s *Server) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listener != nil && !s.closing.Load()
}

func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) Stats() ConnStats {
	return ConnStats{Active: s.active.Load(), Served: s.served.Load()}
}

// Shutdown stops accepting, lets in-flight requests finish and closes idle
// connections. When ctx expires first the remaining requests are cancelled,
// their connections closed and ctx.Err() is returned.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing.Store(true)
	if s.listener != nil {
		_ = s.listener.Close()
	}
	for c := range s.conns {
		_ = c.SetReadDeadline(time.Now())
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancelInFlight()
		s.cfg.Log.Info("TCP server stopped", "served", s.served.Load())
		return nil
	case <-ctx.Done():
		s.cancelInFlight()
		s.mu.Lock()
		for c := range s.conns {
			_ = c.Close()
		}
		s.mu.Unlock()
		return ctx.Err()
	}
}

func (s *Server) cancelInFlight() {
	s.mu.Lock()
	cancel := s.cancelRequests
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing.Load() {
		return false
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	s.wg.Done()
}

// serveConn derives each request's context from base.
func (s *Server) serveConn(base context.Context, conn net.Conn) {
	defer s.workers.Release(1)
	defer s.untrack(conn)
	defer conn.Close()

	s.active.Add(1)
	defer s.active.Add(-1)
	s.served.Add(1)

	connID := uuid.NewString()
	addr := conn.RemoteAddr().String()
	log := s.cfg.Log.With("conn_id", connID, "client", addr)
	log.Debug("Connection accepted")

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, min(4096, s.cfg.MaxLineBytes)), s.cfg.MaxLineBytes)

	requests := 0
	for {
		// Shutdown flips closing before it expires read deadlines, so checking
		// after setting ours cannot miss it.
		_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		if s.closing.Load() {
			break
		}
		if !scanner.Scan() {
			if errors.Is(scanner.Err(), bufio.ErrTooLong) {
				log.Warn("Request line exceeds limit", "max_bytes", s.cfg.MaxLineBytes)
				_ = s.write(conn, protocol.Fail(apperrors.StatusBadRequest, MsgRequestTooLong))
				lingeringClose(conn)
			}
			break
		}

		reqCtx := middleware.WithRequestID(base, uuid.NewString())
		reqCtx = middleware.WithClientAddr(reqCtx, addr)

		resp := s.handler.Handle(reqCtx, scanner.Text())
		requests++
		if err := s.write(conn, resp); err != nil {
			log.Warn("Failed to write response", "error", err)
			break
		}
	}

	log.Debug("Connection closed", "requests", requests)
}

func (s *Server) write(conn net.Conn, resp protocol.Response) error {
	_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	_, err := resp.WriteTo(conn)
	return err
}

// lingeringClose half-closes conn and drains what the client is still
// sending, so the kernel does not reset the connection before the client has
// read our last response.
func lingeringClose(conn net.Conn) {
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.CloseWrite()
	}
	_ = conn.SetReadDeadline(time.Now().Add(lingerTimeout))
	_, _ = io.Copy(io.Discard, io.LimitReader(conn, lingerMaxBytes))
}
