package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vinay2003/Airion-backend-sub001/internal/app"
	"github.com/vinay2003/Airion-backend-sub001/internal/config"
	"github.com/vinay2003/Airion-backend-sub001/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, logger); err != nil {
		logger.Error("app exited", "error", err)
		os.Exit(1)
	}
}
