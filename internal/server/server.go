// Package server exposes the package format over HTTP for the editor.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/slidepack/internal/archive"
	"github.com/ziadkadry99/slidepack/internal/catalog"
	"github.com/ziadkadry99/slidepack/internal/db"
)

// DefaultMaxBodyBytes bounds request bodies when Config.MaxBodyBytes is unset.
const DefaultMaxBodyBytes int64 = 256 << 20

// Config holds server configuration.
type Config struct {
	Port          int
	AllowAll      bool  // allow all CORS origins (dev mode)
	MaxBodyBytes  int64 // upper bound on a request body
	MaxEntryBytes int64 // upper bound on a single archive entry
}

// Server is the HTTP front end for importing, saving and exporting decks.
type Server struct {
	cfg        Config
	db         *db.DB
	catalog    *catalog.Store
	logger     *zap.Logger
	reader     *archive.Reader
	writer     *archive.Writer
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. A nil database disables the history endpoints and
// recording; a nil logger discards logs.
func New(cfg Config, database *db.DB, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.MaxEntryBytes <= 0 {
		cfg.MaxEntryBytes = archive.DefaultMaxEntrySize
	}

	s := &Server{
		cfg:    cfg,
		db:     database,
		logger: logger,
		reader: archive.NewReader(archive.WithLogger(logger), archive.WithMaxEntrySize(cfg.MaxEntryBytes)),
		writer: archive.NewWriter(archive.WithLogger(logger)),
	}
	if database != nil {
		s.catalog = catalog.NewStore(database)
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
		corsOpts.AllowCredentials = false
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequestSize(s.cfg.MaxBodyBytes))
		r.Post("/api/projects/import", s.handleImport)
		r.Post("/api/projects/import-files", s.handleImportFiles)
		r.Post("/api/projects/save", s.handleWrite(archive.ModeEditable))
		r.Post("/api/projects/export", s.handleWrite(archive.ModeStandalone))
		r.Post("/api/themes/compile", s.handleCompileTheme)
		r.Post("/api/slides/parse", s.handleParseSlides)
	})

	if s.catalog != nil {
		catalog.RegisterRoutes(r, s.catalog)
	}

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Catalog returns the history store, or nil when history is disabled.
func (s *Server) Catalog() *catalog.Store { return s.catalog }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("slidepack server listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// requestLogger logs each request at debug level.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debug("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
