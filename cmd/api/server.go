// cmd/api/server.go
// serve starts the HTTP server and shuts it down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// serve blocks until the server stops. On a shutdown signal in-flight
// requests get the configured shutdown window, then the store is closed.
func (app *applicationDependencies) serve() error {
	srvLogger := app.logger.With().Str("component", "http").Logger()

	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:      app.routes(),
		IdleTimeout:  app.config.Server.IdleTimeout,
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		ErrorLog:     log.New(srvLogger, "", 0),
	}

	shutdownErr := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		s := <-quit
		app.logger.Info().Str("signal", s.String()).Msg("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()

		err := apiServer.Shutdown(ctx)
		if err != nil {
			shutdownErr <- err
			return
		}

		shutdownErr <- app.models.Books.Close(ctx)
	}()

	app.logger.Info().
		Str("address", apiServer.Addr).
		Str("environment", app.config.Primary.Env).
		Str("driver", app.config.Database.Driver).
		Msg("starting server")

	err := apiServer.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownErr
	if err != nil {
		return err
	}

	app.logger.Info().Str("address", apiServer.Addr).Msg("server stopped")
	return nil
}
