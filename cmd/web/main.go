package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/16SULPHUR/courseify/internal/app/bootstrap"
)

// Web process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	app, err := bootstrap.BuildWeb()
	if err != nil {
		slog.Error("startup failed", "event", "bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	if err := app.Run(context.Background()); err != nil {
		slog.Error("server exited", "event", "server_exited", "error", err)
		os.Exit(1)
	}
}
