// Package cmd holds the bootstrap shared by the binaries.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"tgorders/api"
	"tgorders/config"
	"tgorders/domain/shared"
	"tgorders/pkg/logger"

	"go.uber.org/zap"
)

// App is the admin HTTP API.
type App struct {
	config *config.Config
	server *http.Server
}

func NewApp(cfg *config.Config, store *Store, dispatcher *shared.EventDispatcher) *App {
	router := api.NewRouter(cfg, store.Factory, dispatcher, store.Pinger())
	router.SetupRoutes()

	return &App{
		config: cfg,
		server: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router.GetEngine(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Run serves until ctx ends, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}
