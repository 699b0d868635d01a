// Package server is the composition root: it wires the database,
// services, handlers, and middleware together and owns the HTTP server's
// lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/snackboard/internal/auth"
	"github.com/sakif/snackboard/internal/handler"
	"github.com/sakif/snackboard/internal/middleware"
	sqliteRepo "github.com/sakif/snackboard/internal/repository/sqlite"
	"github.com/sakif/snackboard/internal/service"
)

// Config holds everything the server needs at construction time.
type Config struct {
	Port            int
	DBPath          string
	AllowedOrigin   string // single allow-listed browser origin for CORS
	BcryptCost      int
	RedactLoginHash bool
}

// Server owns the router and the database connection. The database is
// opened in New and closed when Start returns, so the pool lives exactly
// as long as the process serves requests.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database, assembles the dependency chain
// (repositories → services → handlers), and registers all routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
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
	s.setupRoutes()

	return s, nil
}

// setupRoutes configures middleware and the API surface.
//
// Route table:
//
//	POST   /api/register                → create account
//	POST   /api/login                   → authenticate, return stored row
//	GET    /api/requests                → all requests, joined + mixed sort
//	GET    /api/requests/user/{userID}  → one user's requests
//	POST   /api/requests                → submit a request
//	PUT    /api/requests/{id}/order     → mark/un-mark ordered
//	PUT    /api/requests/{id}/keep      → mark/un-mark keep-on-hand
//	DELETE /api/requests/{id}           → delete a request
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Browser access is restricted to the one allow-listed origin; other
	// origins are rejected here, before any handler runs.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{s.config.AllowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	passwords := auth.NewPasswordService(s.config.BcryptCost)
	authService := service.NewAuthService(s.db.Users(), passwords, s.logger)
	requestService := service.NewRequestService(s.db.Requests(), s.logger)

	authHandler := handler.NewAuthHandler(authService, s.config.RedactLoginHash, s.logger)
	requestHandler := handler.NewRequestHandler(requestService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)

		r.Get("/requests", requestHandler.HandleListAll)
		r.Get("/requests/user/{userID}", requestHandler.HandleListByUser)
		r.Post("/requests", requestHandler.HandleSubmit)
		r.Put("/requests/{id}/order", requestHandler.HandleSetOrdered)
		r.Put("/requests/{id}/keep", requestHandler.HandleSetKeepOnHand)
		r.Delete("/requests/{id}", requestHandler.HandleDelete)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests (30s budget) and closes the database.
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

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.String("allowedOrigin", s.config.AllowedOrigin),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
