// Package server exposes a Calendar over HTTP as a small JSON API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mesh-intelligence/wareki/pkg/wareki"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

// shutdownTimeout bounds how long in-flight requests may run after the
// context is cancelled.
const shutdownTimeout = 10 * time.Second

// Server serves one Calendar.
type Server struct {
	Echo *echo.Echo
	cal  *wareki.Calendar
}

// New builds the echo instance, its middleware and routes.
func New(cal *wareki.Calendar) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(Recovery())
	e.Use(RequestLogger())

	s := &Server{Echo: e, cal: cal}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/healthz", s.health)

	api := s.Echo.Group("/api/v1")
	api.GET("/eras", s.listEras)
	api.GET("/eras/:era", s.getEra)
	api.GET("/eras/:era/years/:year/months/:month/days/:day", s.dateOfEra)
	api.GET("/eras/:era/years/:year/days/:yday", s.dateOfEraYearDay)
	api.GET("/dates/:iso", s.dateOfISO)
	api.GET("/parse/:display", s.parse)
}

// ServeHTTP lets the server be used as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Echo.ServeHTTP(w, r)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting wareki server", slog.String("addr", addr))
		errCh <- s.Echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
