package main

import (
	"os"
	"time"

	"datesheet/internal/cli"
	"datesheet/internal/config"
	"datesheet/internal/core"
	applog "datesheet/internal/log"
	"datesheet/internal/render"
)

const outputFile = "output.pdf"

func main() {
	cfg, logger := cli.LoadAndValidateConfig(os.Stderr, applog.ComponentCLI)

	if err := run(cfg, logger); err != nil {
		logger.Error("Datesheet generation failed", applog.FieldError, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *applog.Logger) error {
	fontFile := cfg.FontFileOr(config.DefaultFontFile)
	renderer, err := render.New(render.FontFile(fontFile))
	if err != nil {
		return err
	}

	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	data, err := renderer.RenderMonth(start, core.A4Landscape)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return err
	}

	logger.Info("Datesheet written",
		applog.FieldOutput, outputFile,
		applog.FieldBytes, len(data),
		applog.FieldFont, fontFile,
		applog.FieldYear, start.Year(),
		applog.FieldMonth, int(start.Month()))
	return nil
}
