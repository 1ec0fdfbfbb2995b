package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dsemenov/dosetrack/internal/client/cli"
	"github.com/dsemenov/dosetrack/internal/client/config"
	"github.com/dsemenov/dosetrack/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
