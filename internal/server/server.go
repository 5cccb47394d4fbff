// Package server sets up the HTTP server, router and route table.
//
// It is the composition root: New opens the database and wires
// repository → services → handlers, and setupRoutes maps URLs to
// handlers. Nothing else in the module constructs these pieces.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/booking/internal/config"
	"github.com/sakif/booking/internal/handler"
	"github.com/sakif/booking/internal/middleware"
	sqliteRepo "github.com/sakif/booking/internal/repository/sqlite"
	"github.com/sakif/booking/internal/service"
	"github.com/sakif/booking/web"
)

// Server owns the router and the database connection. The connection is
// closed when Start returns, or by Close if Start is never called.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database at cfg.DBPath and wires every route.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(web.Templates(), web.Static()); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures middleware and the route table:
//
//	GET        /                       home
//	GET        /venues                 venues by city and state
//	GET, POST  /venues/search          venue search
//	GET, POST  /venues/create          new venue form / submission
//	GET        /venues/{id}            venue detail
//	DELETE     /venues/{id}            delete venue (JSON redirect)
//	POST       /venues/{id}/delete     delete venue (form)
//	GET, POST  /venues/{id}/edit       edit venue form / submission
//	           /artists/...            same shape as /venues
//	GET        /shows                  all shows
//	GET, POST  /shows/create           new show form / submission
//	GET        /static/*               embedded assets
//	GET        /metrics                Prometheus
//	GET        /healthz                database ping
//
// Middleware order: request id first so the logger sees it; Recoverer
// inside the logger so a panic is still logged as a 500.
func (s *Server) setupRoutes(templates, static fs.FS) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Metrics)

	sessionKey, err := s.config.SessionKeyBytes()
	if err != nil {
		return err
	}
	if s.config.SessionKey == "" {
		s.logger.Warn("SESSION_KEY not set; flash messages will not survive a restart")
	}

	flashes := handler.NewFlashStore(sessionKey, s.logger)
	view, err := handler.NewView(templates, flashes, s.logger)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	// s.db implements every repository interface; each service only sees
	// the one it needs.
	venueService := service.NewVenueService(s.db, s.logger)
	artistService := service.NewArtistService(s.db, s.logger)
	showService := service.NewShowService(s.db, s.logger)

	homeHandler := handler.NewHomeHandler(venueService, artistService, view)
	venueHandler := handler.NewVenueHandler(venueService, view, s.logger)
	artistHandler := handler.NewArtistHandler(artistService, view, s.logger)
	showHandler := handler.NewShowHandler(showService, venueService, artistService, view, s.logger)
	healthHandler := handler.NewHealthHandler(s.db, s.logger)

	s.router.NotFound(view.NotFound)

	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Get("/healthz", healthHandler.HandleHealth)

	s.router.Get("/", homeHandler.HandleHome)

	s.router.Route("/venues", func(r chi.Router) {
		r.Get("/", venueHandler.HandleList)
		r.Get("/search", venueHandler.HandleSearch)
		r.Post("/search", venueHandler.HandleSearch)
		r.Get("/create", venueHandler.HandleNew)
		r.Post("/create", venueHandler.HandleCreate)
		r.Get("/{id}", venueHandler.HandleDetail)
		r.Delete("/{id}", venueHandler.HandleDelete)
		r.Post("/{id}/delete", venueHandler.HandleDeleteForm)
		r.Get("/{id}/edit", venueHandler.HandleEdit)
		r.Post("/{id}/edit", venueHandler.HandleUpdate)
	})

	s.router.Route("/artists", func(r chi.Router) {
		r.Get("/", artistHandler.HandleList)
		r.Get("/search", artistHandler.HandleSearch)
		r.Post("/search", artistHandler.HandleSearch)
		r.Get("/create", artistHandler.HandleNew)
		r.Post("/create", artistHandler.HandleCreate)
		r.Get("/{id}", artistHandler.HandleDetail)
		r.Delete("/{id}", artistHandler.HandleDelete)
		r.Post("/{id}/delete", artistHandler.HandleDeleteForm)
		r.Get("/{id}/edit", artistHandler.HandleEdit)
		r.Post("/{id}/edit", artistHandler.HandleUpdate)
	})

	s.router.Route("/shows", func(r chi.Router) {
		r.Get("/", showHandler.HandleList)
		r.Get("/create", showHandler.HandleNew)
		r.Post("/create", showHandler.HandleCreate)
	})

	return nil
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully within
// the configured timeout and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
