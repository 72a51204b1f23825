// Package server implements the HTTP API that exposes parsed ELF layouts
// as JSON to external visualizers, with optional file watching and reload
// notification over WebSocket.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/elfmap/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// Config controls the server.
type Config struct {
	Addr  string       // listen address
	Root  string       // directory the layout endpoint may read from
	Watch bool         // broadcast reload events on file changes under Root
	Log   *slog.Logger // defaults to the shared logger
}

// Server serves region-tree layouts over HTTP.
//
// Handler carries the full route set and can be mounted directly in tests;
// Run starts a listener and blocks until the context is cancelled.
type Server struct {
	Handler http.Handler

	cfg     Config
	log     *slog.Logger
	root    string
	metrics *Metrics
	hub     *hub
}

// New validates cfg and assembles the route set.
func New(cfg Config) (*Server, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("server: resolve root %q: %w", cfg.Root, err)
	}

	log := cfg.Log
	if log == nil {
		log = logger.L
	}

	reg := prometheus.NewRegistry()

	s := &Server{
		cfg:     cfg,
		log:     log,
		root:    root,
		metrics: NewMetrics(reg),
		hub:     newHub(log),
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/layout", s.handleLayout).Methods("GET")
	r.HandleFunc("/api/v1/inspect", s.handleInspect).Methods("POST")
	r.HandleFunc("/api/v1/events", s.handleEvents).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")
	r.Use(s.logMiddleware)

	s.Handler = r
	return s, nil
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Addr, err)
	}

	srv := &http.Server{Handler: s.Handler}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("server listening", "addr", ln.Addr().String(), "root", s.root, "watch", s.cfg.Watch)
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if s.cfg.Watch {
		g.Go(func() error {
			return s.watch(ctx)
		})
	}

	err = g.Wait()
	s.hub.closeAll()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// logMiddleware logs one line per request.
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}

// statusWriter records the response status for logging. Hijack is forwarded
// so the WebSocket upgrade keeps working behind the middleware.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("server: response writer does not support hijacking")
	}
	return hj.Hijack()
}
