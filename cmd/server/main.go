package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/mmynk/holocron/internal/app"
	"github.com/mmynk/holocron/internal/config"
	"github.com/mmynk/holocron/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup()
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.SetupWithOptions(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
