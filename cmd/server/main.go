// Substreams relay HTTP server.
// Usage: go run ./cmd/server
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/AlexZinkM/substreams-relay/docs"
	"github.com/AlexZinkM/substreams-relay/internal/api"
	"github.com/AlexZinkM/substreams-relay/internal/config"
	"github.com/AlexZinkM/substreams-relay/internal/observability"

	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// @title        Substreams Relay API
// @version      1.0
// @description  Runs the substreams CLI for wallet addresses and serves the results as static files.
// @BasePath     /
func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg := config.Get()

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	router, err := api.SetupRouter(cfg, logger)
	if err != nil {
		logger.Fatal("failed to set up router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("binary", cfg.Binary),
			zap.String("endpoint", cfg.Endpoint),
			zap.String("package", cfg.Package),
			zap.String("public_dir", cfg.PublicDir),
			zap.Duration("run_timeout", cfg.RunTimeout),
			zap.Int("max_concurrent", cfg.MaxConcurrent),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
