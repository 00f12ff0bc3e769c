// Package main is the entry point for the bookshelf API server.
// It wires together configuration, logging, the book store and the HTTP router.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/aoideee/bookshelf-api/internal/config"
	"github.com/aoideee/bookshelf-api/internal/data"
	"github.com/aoideee/bookshelf-api/internal/logger"
)

// appVersion is reported by the health check and in logs.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
type applicationDependencies struct {
	config *config.Config
	logger zerolog.Logger
	models data.Models
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Format:      cfg.Log.Format,
		Environment: cfg.Primary.Env,
		Level:       cfg.Log.Level,
	}).With().Str("version", appVersion).Logger()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("could not open book store")
	}

	log.Info().Str("driver", cfg.Database.Driver).Msg("book store ready")

	app := &applicationDependencies{
		config: cfg,
		logger: log,
		models: data.NewModels(store),
	}

	err = app.serve()
	if err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// openStore connects to the configured backend; the connect timeout comes from the store config.
func openStore(cfg *config.Config) (data.BookStore, error) {
	return data.Open(context.Background(), data.StoreConfig{
		Driver:     cfg.Database.Driver,
		URI:        cfg.Database.URI,
		Database:   cfg.Database.Name,
		Collection: cfg.Database.Collection,
		Timeout:    cfg.Database.Timeout,
	})
}
