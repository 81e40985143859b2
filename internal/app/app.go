package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vinay2003/Airion-backend-sub001/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Run serves the API until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	janitor := &Janitor{
		Sessions:         c.SessionRepo,
		Otps:             c.OtpRepo,
		Clock:            c.Clock,
		Logger:           logger,
		Interval:         cfg.CleanupInterval,
		SessionRetention: cfg.SessionRetention,
		OtpTTL:           cfg.OTP_TTL,
	}
	go janitor.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
