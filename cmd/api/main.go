package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"smart-ats/internal/bootstrap"
	"smart-ats/internal/shared/config"
	"smart-ats/internal/shared/server"
	"smart-ats/internal/shared/telemetry"
)

func main() {
	defer telemetry.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}

	telemetry.Info("api.config", map[string]any{"model": cfg.LLMModel, "env": cfg.Env})
	if err := server.Run(ctx, server.Addr(cfg.Port), app.Router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
