// Package server exposes the dashgrid layout engine over HTTP.
//
// Routes:
//
//	POST /layouts/analysis   convert an analysis result (body: the result JSON)
//	POST /layouts/resolve    remove overlaps  {"items": [...]}
//	POST /layouts/preset     generate rows    {"preset": "3+1", "minWidthCols": 1, "seed": 42}
//	POST /layouts/binpack    pack widgets     {"count": 8, "seed": 42}
//	GET  /presets            list presets
//	GET  /presets/{name}     one preset
//	GET  /widget-types       widget catalog with size bounds
//	GET  /stats              in-process counters (when Deps.Stats is set)
//	GET  /healthz            liveness and build info
//
// Every response is a JSON envelope: {"success": true, "data": ...} or
// {"success": false, "code": "INVALID_POSITION", "message": ...}.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// NewRouter wires the handlers and middleware.
func NewRouter(deps *Deps) chi.Router {
	r := chi.NewRouter()

	lm := &loggerMiddleware{Log: deps.Log}
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(limitBody)

	lh := NewLayoutHandlers(deps)
	ch := NewCatalogHandlers(deps)

	r.Mount("/layouts", lh.LayoutRoutes())
	r.Get("/presets", ch.ListPresets)
	r.Get("/presets/{name}", ch.GetPreset)
	r.Get("/widget-types", ch.ListWidgetTypes)
	if deps.Stats != nil {
		r.Get("/stats", ch.GetStats)
	}
	r.Get("/healthz", ch.Health)
	return r
}

// Server is an HTTP server with graceful shutdown.
type Server struct {
	HTTP   *http.Server
	Logger *log.Logger
}

// Options configures [New].
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// New creates a server for deps.
func New(deps *Deps, opts Options) *Server {
	return &Server{
		HTTP: &http.Server{
			Addr:              opts.Addr,
			Handler:           NewRouter(deps),
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadTimeout,
			WriteTimeout:      opts.WriteTimeout,
		},
		Logger: deps.Log,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", s.HTTP.Addr)
		errc <- s.HTTP.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.HTTP.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
