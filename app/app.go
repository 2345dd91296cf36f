// Package app wires the store, mailer, file store and API servers together.
package app

import (
	"context"

	"log/slog"

	"github.com/evasion-voyages/voyages-manager/config"
	httpapi "github.com/evasion-voyages/voyages-manager/internal/api/http"
	"github.com/evasion-voyages/voyages-manager/internal/apisrv/admin"
	"github.com/evasion-voyages/voyages-manager/internal/apisrv/auth"
	"github.com/evasion-voyages/voyages-manager/internal/apisrv/frontend"
	"github.com/evasion-voyages/voyages-manager/internal/mail"
	"github.com/evasion-voyages/voyages-manager/internal/store"
	"github.com/evasion-voyages/voyages-manager/internal/uploads"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   *store.MYSQLStore
	c    *config.Config
	done chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start connects the dependencies and runs the HTTP server until ctx is
// cancelled.
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting voyages manager")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}

	files, err := uploads.New(a.c.Uploads)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't init uploads",
			slog.String("err", err.Error()),
		)
		return err
	}

	// the static /uploads route serves whatever directory the file store
	// actually writes to
	a.c.HTTP.UploadsDir = files.Dir()

	mailer := mail.New(a.c.Mailer)

	authS := auth.New(&a.c.Auth)
	frontendS := frontend.New(a.db, mailer)
	adminS := admin.New(a.db, files, authS, a.db)

	a.hs = httpapi.New(&a.c.HTTP)
	go func() {
		defer close(a.done)
		if err := a.hs.Start(ctx, a.db, frontendS, adminS, authS); err != nil {
			slog.Default().ErrorContext(ctx, "http server exited",
				slog.String("err", err.Error()),
			)
		}
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.db != nil {
		a.db.Close()
	}
	<-a.done
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() <-chan struct{} {
	return a.done
}
