package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"

	"restmapper/internal/metadata"
	"restmapper/internal/record"
	"restmapper/internal/registry"
	"restmapper/internal/schema"
)

// Engine bundles the components the handlers work on. Metadata is
// optional.
type Engine struct {
	Registry  *registry.Registry
	Deriver   *schema.Deriver
	Converter *record.Converter
	Metadata  metadata.Source
}

// Server is the HTTP inspection server.
type Server struct {
	cfg      Config
	eng      Engine
	router   *mux.Router
	srv      *http.Server
	shutdown atomic.Bool
}

// New validates cfg and sets up the routes.
func New(cfg Config, eng Engine) (*Server, error) {
	if eng.Registry == nil || eng.Deriver == nil || eng.Converter == nil {
		return nil, errors.New("server: registry, deriver and converter are required")
	}

	if err := cfg.Check(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	s := &Server{cfg: cfg, eng: eng}
	s.router = s.newRouter()
	s.srv = &http.Server{
		Addr:              cfg.Address(),
		Handler:           s.router,
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout + time.Second,
	}

	return s, nil
}

// Handler returns the router, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves in the background.
// It returns once the listener is bound.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	log.Infof("Starting HTTP server at %s", ln.Addr())

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if !s.shutdown.Load() {
				log.Error(err)
			}
		}
	}()

	return nil
}

// Stop shuts the server down, waiting for in-flight requests up to the
// configured shutdown timeout.
func (s *Server) Stop() error {
	log.Info("Stopping HTTP server.")
	s.shutdown.Store(true)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	return s.srv.Shutdown(ctx)
}
