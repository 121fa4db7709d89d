// Command seed drops all catalog data and loads the demo catalog.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/mmynk/holocron/internal/app"
	"github.com/mmynk/holocron/internal/config"
	"github.com/mmynk/holocron/internal/seed"
	"github.com/mmynk/holocron/pkg/logging"
)

func main() {
	verbose := flag.Bool("v", false, "log every seeded row")
	flag.Parse()

	if *verbose {
		logging.SetupWithLevel(slog.LevelDebug)
	} else {
		logging.Setup()
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if _, err := seed.Run(ctx, store); err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}
