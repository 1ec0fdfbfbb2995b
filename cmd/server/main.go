package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dsemenov/dosetrack/internal/logging"
	"github.com/dsemenov/dosetrack/internal/server"
	"github.com/dsemenov/dosetrack/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
