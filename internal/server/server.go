// Package server exposes the clear-sky irradiance model over HTTP.
package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/solartools/clearsky/internal/archive"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr string
}

// Server serves the irradiance API.
type Server struct {
	cfg      Config
	logger   *zap.SugaredLogger
	store    *archive.Store // nil when archiving is disabled
	handlers *Handlers
	httpSrv  http.Server
}

// New creates a Server. store may be nil; the profile endpoints then return
// 404.
func New(cfg Config, logger *zap.SugaredLogger, store *archive.Store) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
		store:  store,
	}
	s.handlers = NewHandlers(s)

	s.httpSrv.Addr = cfg.Addr
	s.httpSrv.Handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet}),
	)(handlers.CompressHandler(s.setupRouter()))

	return s
}

// Run starts the server and blocks until ctx is cancelled, then shuts the
// server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Infof("starting irradiance API server on %s", s.cfg.Addr)

	var wg sync.WaitGroup
	errCh := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.httpSrv.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down irradiance API server...")
		s.httpSrv.Shutdown(context.Background())
		wg.Wait()
		return nil
	case err := <-errCh:
		return err
	}
}

// setupRouter configures the HTTP router with all endpoints
func (s *Server) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/irradiance", s.handlers.GetIrradiance).Methods(http.MethodGet)
	router.HandleFunc("/api/chart.png", s.handlers.GetChart).Methods(http.MethodGet)
	router.HandleFunc("/api/sun", s.handlers.GetSunTimes).Methods(http.MethodGet)
	router.HandleFunc("/api/position", s.handlers.GetPosition).Methods(http.MethodGet)
	router.HandleFunc("/api/profiles", s.handlers.ListProfiles).Methods(http.MethodGet)
	router.HandleFunc("/api/profiles/{id}", s.handlers.GetProfile).Methods(http.MethodGet)

	router.Use(s.loggingMiddleware)
	return router
}

// loggingMiddleware logs each request through the zap logger
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debugw("request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
