// Package httpserver runs an http.Handler until its context is done.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultShutdownTimeout = time.Second * 10
	defaultReadTimeout     = time.Second * 10
	defaultWriteTimeout    = time.Second * 10
)

var (
	ErrNilHandler           = errors.New("http server: nil handler")
	ErrServerShutdownFailed = errors.New("server shutdown failed")
)

// Server serves one handler on one address.
type Server struct {
	addr            string
	handler         http.Handler
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	logger          *zerolog.Logger
	onReady         func(net.Addr)
}

type Option func(*Server)

// WithTimeouts sets the read and write timeouts of every connection.  The
// read timeout also bounds reading the request headers.
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = read
		s.writeTimeout = write
	}
}

// WithShutdownTimeout bounds the graceful shutdown.  Connections still open
// afterwards are closed.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = timeout
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithReadySignal registers a callback invoked with the bound address once
// the server is listening.
func WithReadySignal(cb func(net.Addr)) Option {
	return func(s *Server) {
		s.onReady = cb
	}
}

func New(addr string, handler http.Handler, opts ...Option) (*Server, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	nop := zerolog.Nop()
	s := &Server{
		addr:            addr,
		handler:         handler,
		readTimeout:     defaultReadTimeout,
		writeTimeout:    defaultWriteTimeout,
		shutdownTimeout: defaultShutdownTimeout,
		logger:          &nop,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ListenAndServe serves until ctx is done or the server fails, then shuts
// the server down gracefully.  Request contexts carry the values of ctx but
// are not cancelled with it, so requests in flight can finish.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	bound := listener.Addr()

	svr := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.readTimeout,
		ReadHeaderTimeout: s.readTimeout,
		WriteTimeout:      s.writeTimeout,
		ErrorLog:          stdlog.New(s.logger.With().Str("addr", bound.String()).Logger(), "", 0),
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	s.logger.Info().Stringer("addr", bound).Msg("HTTP server listening")
	if s.onReady != nil {
		s.onReady(bound)
	}

	fatal := make(chan error, 1)
	go func() {
		fatal <- svr.Serve(listener)
	}()

	select {
	case err := <-fatal:
		if !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Stringer("addr", bound).Msg("HTTP server failed unexpectedly")
			return err
		}
		return nil
	case <-ctx.Done():
	}
	return s.shutdown(svr, bound)
}

func (s *Server) shutdown(svr *http.Server, bound net.Addr) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.logger.Info().
		Stringer("addr", bound).Dur("timeout", s.shutdownTimeout).
		Msg("Stopping HTTP server gracefully")
	if err := svr.Shutdown(ctx); err != nil {
		s.logger.Warn().Err(err).Stringer("addr", bound).Msg("Closing remaining connections")
		if cerr := svr.Close(); cerr != nil {
			err = cerr
		}
		return fmt.Errorf("%w: %v", ErrServerShutdownFailed, err)
	}
	s.logger.Info().Stringer("addr", bound).Msg("HTTP server stopped")
	return nil
}
