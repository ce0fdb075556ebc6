package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/aheadley/packagetrack/internal/carriers"
	"github.com/aheadley/packagetrack/internal/config"
	"github.com/aheadley/packagetrack/internal/database"
	"github.com/aheadley/packagetrack/internal/server"
)

func main() {
	cfg, err := config.Load(viper.New())
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database initialized", "path", cfg.Database.Path)

	registry := carriers.DefaultRegistry(carriers.AmazonConfig{
		Timezone:  cfg.Carriers.Amazon.Timezone,
		UserAgent: cfg.Carriers.Amazon.UserAgent,
		Timeout:   cfg.Carriers.Amazon.Timeout,
	}, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: server.New(registry, db, logger).Router(),

		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := server.Run(srv, 30*time.Second, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
