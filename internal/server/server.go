// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and routes.
// Think of it as the control centre that decides:
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// WHY SEPARATE FROM main.go?
// Keeping server setup in its own package makes it:
// - Testable (we can create a test server without running main)
// - Reusable (multiple entry points could use the same server config)
// - Clean (main.go stays minimal — just "start the server")
//
// DEPENDENCY INJECTION FLOW:
// main.go reads config and calls New(), which assembles the whole graph:
//
//	sqlite.DB → repositories → services → handlers → routes
//
// This is the "composition root" pattern — all dependencies are wired
// in one place (New/setupRoutes), rather than scattered across the codebase.
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

	"github.com/sakif/wordecho/internal/auth"
	"github.com/sakif/wordecho/internal/handler"
	"github.com/sakif/wordecho/internal/middleware"
	sqliteRepo "github.com/sakif/wordecho/internal/repository/sqlite"
	"github.com/sakif/wordecho/internal/service"
)

// Config holds server configuration.
// Using a struct for config (instead of individual parameters) makes it easy to:
// - Add new config options without changing function signatures
// - Pass config around as a single value
// - Load config from files/env vars in one place
type Config struct {
	Port   int
	DBPath string // path to the SQLite database file

	JWTSecret string
	TokenTTL  time.Duration // access token lifetime; <= 0 uses the default

	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string

	FrontendURL string   // where the OAuth callback redirects after login
	CORSOrigins []string // origins allowed to call the API from a browser
}

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the database connection (db). When the server shuts down,
// we must close this connection to flush any pending writes and release the
// file lock. This is handled in Start() during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a new Server with the given config.
//
// IMPORT ALIAS:
// We import repository/sqlite as `sqliteRepo` to avoid confusion with
// the sqlite driver package. Import aliases are common in Go when
// package names would otherwise collide or be unclear.
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

	if err := s.setupRoutes(); err != nil {
		db.Close() // Clean up DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /                          → Welcome message
//	POST   /token                     → Password login (form-encoded)
//	GET    /auth/github               → Start GitHub OAuth
//	GET    /auth/github/callback      → Complete GitHub OAuth
//	POST   /auth/logout               → Clear the access_token cookie
//	POST   /api/users/                → Create user
//	GET    /api/users/                → List users
//	GET    /api/users/me              → Current user          [auth]
//	PUT    /api/users/{id}            → Update user
//	DELETE /api/users/{id}            → Delete user
//	GET    /api/blogs/                → List blogs (skip/limit)
//	POST   /api/blogs/                → Create blog           [auth]
//	GET    /api/blogs/{id}            → Get blog
//	PUT    /api/blogs/{id}            → Update blog (user_id param or token)
//	DELETE /api/blogs/{id}            → Delete blog           [auth]
//	GET    /api/blogs/{id}/comments   → List comments
//	POST   /api/blogs/{id}/comments   → Post comment          [auth]
//	GET    /api/comments/{id}         → Get comment
//	POST   /api/contact/              → Submit contact message
//
// MIDDLEWARE ORDER MATTERS:
// Middleware executes in the order it's added. Our order:
// 1. RequestID — assigns unique ID to each request (for tracing)
// 2. RealIP — extracts real client IP from proxy headers
// 3. Logger — logs each request with timing info
// 4. Recoverer — catches panics and returns 500 instead of crashing
// 5. CORS — lets the frontend origin call the API with credentials
func (s *Server) setupRoutes() error {
	// === Global Middleware ===
	// These run on EVERY request, in order

	s.router.Use(chimiddleware.RequestID) // Adds X-Request-ID header
	s.router.Use(chimiddleware.RealIP)    // Extracts real IP from X-Forwarded-For
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer) // Recovers from panics, returns 500

	// AllowCredentials is required because the browser sends the
	// access_token cookie cross-origin; a wildcard origin would be
	// rejected by the browser in that mode, so origins are listed explicitly.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// === Auth Building Blocks ===
	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()
	github := auth.NewGitHubProvider(
		s.config.GitHubClientID,
		s.config.GitHubClientSecret,
		s.config.GitHubCallbackURL,
	)

	// === Services ===
	// Each service receives repository INTERFACES — s.db.Users() returns a
	// *sqlite.UserDB, which satisfies repository.UserRepository.
	userService := service.NewUserService(s.db.Users(), passwords, s.logger)
	blogService := service.NewBlogService(s.db.Blogs(), s.logger)
	commentService := service.NewCommentService(s.db.Comments(), s.db.Blogs(), s.logger)
	contactService := service.NewContactService(s.db.Contact(), s.logger)
	authService := service.NewAuthService(s.db.Users(), tokens, passwords, s.logger)

	// === Handlers ===
	userHandler := handler.NewUserHandler(userService, s.logger)
	blogHandler := handler.NewBlogHandler(blogService, commentService, s.logger)
	contactHandler := handler.NewContactHandler(contactService, s.logger)
	authHandler := handler.NewAuthHandler(authService, github, tokens, s.config.FrontendURL, s.logger)

	requireAuth := auth.RequireAuth(tokens)
	optionalAuth := auth.OptionalAuth(tokens)

	// === Routes ===
	s.router.Get("/", handler.HandleRoot)

	s.router.Post("/token", authHandler.HandleToken)

	s.router.Route("/auth", func(r chi.Router) {
		r.Get("/github", authHandler.HandleGitHubLogin)
		r.Get("/github/callback", authHandler.HandleGitHubCallback)
		r.Post("/logout", authHandler.HandleLogout)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.HandleCreate)
			r.Get("/", userHandler.HandleList)
			r.With(requireAuth).Get("/me", userHandler.HandleMe)
			r.Put("/{id}", userHandler.HandleUpdate)
			r.Delete("/{id}", userHandler.HandleDelete)
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", blogHandler.HandleList)
			r.With(requireAuth).Post("/", blogHandler.HandleCreate)
			r.Get("/{id}", blogHandler.HandleGet)
			r.With(optionalAuth).Put("/{id}", blogHandler.HandleUpdate)
			r.With(requireAuth).Delete("/{id}", blogHandler.HandleDelete)
			r.Get("/{id}/comments", blogHandler.HandleListComments)
			r.With(requireAuth).Post("/{id}/comments", blogHandler.HandleCreateComment)
		})

		r.Get("/comments/{id}", blogHandler.HandleGetComment)

		r.Post("/contact/", contactHandler.HandleSubmit)
	})

	return nil
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the database connection (flushes WAL, releases file lock)
//
// If we skip step 3, the database file might be left in an inconsistent state.
// The `defer s.db.Close()` ensures this happens even if something panics.
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
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
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

		// Give in-flight requests 30 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
