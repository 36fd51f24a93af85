// Package server exposes the triage engine to collaborators over REST:
// webhook message ingest, settings management and the notification feed.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/chatsift/pkg/dispatch"
	"github.com/umputun/chatsift/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/processor.go -pkg mocks -skip-ensure -fmt goimports . Processor
//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . SettingsStore
//go:generate moq -out mocks/feed.go -pkg mocks -skip-ensure -fmt goimports . FeedReader

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	processor Processor
	settings  SettingsStore
	feed      FeedReader
	version   string
	debug     bool
	started   time.Time

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Processor interface for message ingest
type Processor interface {
	Enqueue(job dispatch.Job) error
}

// SettingsStore interface for settings operations
type SettingsStore interface {
	GetOrCreate(ctx context.Context, userID, teamID string) (domain.UserSettings, error)
	Update(ctx context.Context, userID, teamID string, patch domain.SettingsPatch) (domain.UserSettings, error)
}

// FeedReader interface for notification feed access
type FeedReader interface {
	ListByUser(ctx context.Context, userID, teamID string, limit, offset int) ([]domain.Record, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, processor Processor, settings SettingsStore, feed FeedReader, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		processor: processor,
		settings:  settings,
		feed:      feed,
		version:   version,
		debug:     debug,
		started:   time.Now(),
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("chatsift", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("POST /messages", s.ingestHandler)
		r.HandleFunc("GET /settings/{team}/{user}", s.getSettingsHandler)
		r.HandleFunc("PATCH /settings/{team}/{user}", s.updateSettingsHandler)
		r.HandleFunc("GET /feed/{team}/{user}", s.feedHandler)
		r.HandleFunc("GET /status", s.statusHandler)
	})
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
		"time":    time.Now().UTC(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}
