// Package httpapi assembles the chi router and runs the HTTP server.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/evasion-voyages/voyages-manager/internal/apisrv/admin"
	"github.com/evasion-voyages/voyages-manager/internal/apisrv/auth"
	"github.com/evasion-voyages/voyages-manager/internal/apisrv/frontend"
	"github.com/evasion-voyages/voyages-manager/internal/apisrv/httpx"
	"github.com/evasion-voyages/voyages-manager/internal/dependency"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	UploadsDir     string   `mapstructure:"uploads_dir"`
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router(
	repo dependency.Repository,
	frontendServer *frontend.Server,
	adminServer *admin.Server,
	authServer *auth.Server,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	allowed := s.c.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", auth.TokenHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := repo.Ping(r.Context()); err != nil {
			httpx.Error(w, http.StatusServiceUnavailable, "La base de données est indisponible")
			return
		}
		httpx.Message(w, http.StatusOK, "ok")
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(frontendServer.Routes)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authServer.Login)
			r.Post("/logout", authServer.Logout)
		})
		r.Route("/admin", adminServer.Routes)
	})

	if s.c.UploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.c.UploadsDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Default().InfoContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("took", time.Since(start)),
		)
	})
}

// Start starts the server and blocks until ctx is cancelled or the listener
// fails.
func (s *Server) Start(ctx context.Context,
	repo dependency.Repository,
	frontendServer *frontend.Server,
	adminServer *admin.Server,
	authServer *auth.Server,
) error {
	defer close(s.done)

	s.hs = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", s.c.Address, s.c.Port),
		Handler:           s.router(repo, frontendServer, adminServer, authServer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Default().InfoContext(ctx, "http server listening",
			slog.String("addr", s.hs.Addr),
		)
		if err := s.hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.hs.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}
