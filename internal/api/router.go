package api

import (
	"fmt"
	"net/http"

	"github.com/AlexZinkM/substreams-relay/internal/client"
	"github.com/AlexZinkM/substreams-relay/internal/config"
	"github.com/AlexZinkM/substreams-relay/internal/handler"
	"github.com/AlexZinkM/substreams-relay/internal/observability"
	"github.com/AlexZinkM/substreams-relay/internal/runner"
	"github.com/AlexZinkM/substreams-relay/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// SetupRouter wires the substreams runner, result store and handlers from cfg
func SetupRouter(cfg *config.Config, logger *zap.Logger) (http.Handler, error) {
	execRunner := runner.NewExecRunner(runner.Options{
		Binary:        cfg.Binary,
		Timeout:       cfg.RunTimeout,
		MaxConcurrent: cfg.MaxConcurrent,
		Logger:        logger,
	})
	results := store.NewResultStore(cfg.PublicDir)

	substreamsHandler, err := handler.NewSubstreamsHandler(
		client.NewSubstreamsClient(execRunner, cfg.Binary),
		results,
		cfg.Defaults(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create substreams handler: %w", err)
	}

	return NewRouter(substreamsHandler, results, logger), nil
}

// NewRouter sets up routes and middleware around an existing handler
func NewRouter(substreamsHandler *handler.SubstreamsHandler, results *store.ResultStore, logger *zap.Logger) http.Handler {
	observability.RegisterMetrics()

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Operational endpoints
	mux.HandleFunc("/health", substreamsHandler.Health)
	mux.Handle("/metrics", promhttp.Handler())

	// Result files
	mux.Handle(staticPrefix, http.StripPrefix(staticPrefix, http.FileServer(results.FileSystem())))

	// Substreams endpoints
	mux.HandleFunc("/substreams/info", substreamsHandler.Info)
	mux.HandleFunc("/stream", substreamsHandler.Stream)
	mux.HandleFunc("/stream/qr", substreamsHandler.ResultQR)

	if logger == nil {
		logger = zap.NewNop()
	}
	return RequestLogger(logger, Recover(logger, mux))
}
