package main

import (
	"context"
	"os"

	"datesheet/internal/cli"
	"datesheet/internal/config"
	apphttp "datesheet/internal/http"
	applog "datesheet/internal/log"
	"datesheet/internal/render"
)

func main() {
	cfg, logger := cli.LoadAndValidateConfig(os.Stdout, applog.ComponentApp)

	fontSource := render.DefaultFont()
	if cfg.FontFile != "" {
		fontSource = render.FontFile(cfg.FontFile)
	}
	renderer, err := render.New(fontSource)
	if err != nil {
		logger.Error("Failed to load font", applog.FieldError, err, applog.FieldFont, fontSource.Name())
		os.Exit(1)
	}

	srv := apphttp.NewServer(cfg.Addr(), renderer, apphttp.WithLogger(logger))
	configureTimeouts(srv, cfg)

	logger.Info("Starting datesheet server",
		"port", cfg.Port,
		applog.FieldFont, renderer.FontName(),
		applog.FieldOperation, applog.OpStartup)

	if err := cli.Serve(context.Background(), logger, srv, cfg.ShutdownTimeout); err != nil {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}

func configureTimeouts(srv *apphttp.Server, cfg *config.Config) {
	srv.ReadTimeout = cfg.ReadTimeout
	srv.WriteTimeout = cfg.WriteTimeout
	srv.IdleTimeout = cfg.IdleTimeout
}
