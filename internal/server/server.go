// Package server hosts explorer sessions over HTTP.
//
// Every session is an independent explorer painting onto an SVG surface.
// Clients create a session, send it the same key, wheel and drag events a
// browser host would, and fetch the latest frame and block details.
//
// # Routes
//
//	POST   /sessions                       create (body: optional document JSON)
//	DELETE /sessions/{id}                  close
//	GET    /sessions/{id}                  navigation state
//	GET    /sessions/{id}/frame.svg        last painted frame
//	GET    /sessions/{id}/block            current block details
//	GET    /sessions/{id}/locals           current function's locals
//	GET    /sessions/{id}/functions        function list
//	POST   /sessions/{id}/functions/{i}    select function i
//	POST   /sessions/{id}/key              {"key": "j"}
//	POST   /sessions/{id}/wheel            {"delta_y": 1, "x": 10, "y": 20}
//	POST   /sessions/{id}/drag             {"dx": 5, "dy": -3}
//	POST   /sessions/{id}/fit
//	GET    /healthz
//	GET    /metrics
//
// Errors are JSON objects {"code": ..., "message": ...} with the HTTP
// status derived from the error code.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/cfgexplorer/pkg/config"
	"github.com/matzehuels/cfgexplorer/pkg/observability"
	"github.com/matzehuels/cfgexplorer/pkg/render"
	"github.com/matzehuels/cfgexplorer/pkg/session"
	"github.com/matzehuels/cfgexplorer/pkg/viewport"
)

// Options configures a Server.
type Options struct {
	// Document is served to sessions created without a body. It may be nil,
	// in which case every create request must carry a document.
	Document []byte

	Canvas           viewport.Size
	Theme            render.Theme
	SessionTTL       time.Duration
	MaxDocumentBytes int64

	Logger *log.Logger

	// Registry receives the server's metrics. Nil means a fresh registry.
	Registry *prometheus.Registry
}

// OptionsFromConfig fills Options from loaded settings.
func OptionsFromConfig(cfg config.Config, doc []byte) Options {
	return Options{
		Document:         doc,
		Canvas:           viewport.Size{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height},
		Theme:            cfg.Theme,
		SessionTTL:       cfg.Server.SessionTTL.Duration,
		MaxDocumentBytes: cfg.Server.MaxDocumentBytes,
	}
}

// Server is the HTTP session host.
type Server struct {
	opts     Options
	store    *session.MemoryStore
	metrics  *Metrics
	registry *prometheus.Registry
	logger   *log.Logger
	router   chi.Router
}

// New creates a server. Its metrics are registered as the process-wide HTTP
// hooks and passed to every session's explorer.
func New(opts Options) *Server {
	if opts.Canvas.Width <= 0 || opts.Canvas.Height <= 0 {
		opts.Canvas = viewport.Size{Width: config.DefaultCanvasWidth, Height: config.DefaultCanvasHeight}
	}
	if opts.MaxDocumentBytes <= 0 {
		opts.MaxDocumentBytes = config.DefaultMaxDocumentBytes
	}
	opts.Theme = opts.Theme.Merge(render.DefaultTheme())
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	s := &Server{
		opts:     opts,
		store:    session.NewMemoryStore(opts.SessionTTL),
		metrics:  NewMetrics(opts.Registry),
		registry: opts.Registry,
		logger:   opts.Logger,
	}
	observability.SetHTTPHooks(s.metrics)
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.withSession)
			r.Get("/", s.handleState)
			r.Delete("/", s.handleDelete)
			r.Get("/frame.svg", s.handleFrame)
			r.Get("/block", s.handleBlock)
			r.Get("/locals", s.handleLocals)
			r.Get("/functions", s.handleFunctions)
			r.Post("/functions/{index}", s.handleSelectFunction)
			r.Post("/key", s.handleKey)
			r.Post("/wheel", s.handleWheel)
			r.Post("/drag", s.handleDrag)
			r.Post("/fit", s.handleFit)
		})
	})
	return r
}

// instrument reports every request to the registered HTTP hooks under its
// route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger.Debug("request", "method", r.Method, "route", route, "status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

// Run serves on addr until ctx is done, expiring idle sessions meanwhile.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.store.Run(ctx, time.Minute)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
