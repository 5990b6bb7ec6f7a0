package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/betabounty/betabounty-api/config"
	httpx "github.com/betabounty/betabounty-api/internal/http"
)

// RunHTTPServer starts the HTTP server and blocks until the process receives
// SIGINT or SIGTERM, then shuts down gracefully within the configured timeout.
func RunHTTPServer(cfg *config.AppConfig, services *ServiceContainer, logger *slog.Logger) error {
	handler := httpx.NewRouter(httpx.RouterServices{
		Dispatcher:           services.Dispatcher,
		Participations:       services.Participations,
		Wallets:              services.Wallets,
		Rewards:              services.Rewards,
		RunToken:             cfg.Dispatcher.RunToken,
		ResetAttemptsOnRetry: cfg.Dispatcher.ResetAttemptsOnRetry,
		Logger:               logger,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.HTTP.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return <-errCh
}
