package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/AlexZinkM/substreams-relay/internal/client"
	"github.com/AlexZinkM/substreams-relay/internal/config"
	"github.com/AlexZinkM/substreams-relay/internal/model"
	"github.com/AlexZinkM/substreams-relay/internal/store"
	"github.com/AlexZinkM/substreams-relay/stream"

	"go.uber.org/zap"
)

// maxBodyBytes bounds the JSON body of POST /stream
const maxBodyBytes = 1 << 20

// SubstreamsHandler holds collaborators for substreams operations
type SubstreamsHandler struct {
	client   *client.SubstreamsClient
	results  *store.ResultStore
	defaults config.Defaults
	logger   *zap.Logger
}

// NewSubstreamsHandler creates a new SubstreamsHandler
func NewSubstreamsHandler(sc *client.SubstreamsClient, results *store.ResultStore, defaults config.Defaults, logger *zap.Logger) (*SubstreamsHandler, error) {
	if sc == nil {
		return nil, errors.New("substreams client is required")
	}
	if results == nil {
		return nil, errors.New("result store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SubstreamsHandler{
		client:   sc,
		results:  results,
		defaults: defaults,
		logger:   logger.Named("handler"),
	}, nil
}

// Info handles GET /substreams/info
// @Summary      Describe the configured substreams package
// @Description  Runs "substreams info <package>" against the configured endpoint. 200 if the command exits 0 within the run timeout, 500 otherwise.
// @Tags         substreams
// @Produce      json
// @Success      200  {object}  model.InfoResponse
// @Failure      500  {object}  model.InfoResponse
// @Router       /substreams/info [get]
func (h *SubstreamsHandler) Info(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	// A disconnected client does not stop the subprocess
	ctx := context.WithoutCancel(r.Context())

	info := stream.GetInfo(ctx, h.client, h.defaults)

	status := http.StatusOK
	if !info.OK {
		status = http.StatusInternalServerError
		h.logger.Warn("substreams info failed",
			zap.Int("code", info.Code),
			zap.String("endpoint", info.Endpoint),
			zap.String("package", info.Package),
		)
	}
	writeJSON(w, status, info)
}

// Stream handles POST /stream
// @Summary      Run the substreams module for a wallet
// @Description  Runs "substreams run" for the wallet and writes the output to /static/<wallet>.txt.
// @Description  On failure a diagnostic "substreams info" probe is attached to the response.
// @Tags         substreams
// @Accept       json
// @Produce      json
// @Param        request  body      model.StreamRequest  true  "Wallet and optional run parameters"
// @Success      200      {object}  model.StreamResponse
// @Failure      400      {object}  model.ValidationError
// @Failure      500      {object}  model.StreamFailure
// @Router       /stream [post]
func (h *SubstreamsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	req, err := decodeStreamRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	ctx := context.WithoutCancel(r.Context())

	resp, err := stream.RunStream(ctx, h.client, h.results, h.defaults, req)
	if err != nil {
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			writeJSON(w, http.StatusBadRequest, validationErr)
			return
		}
		if runErr, ok := stream.IsRunFailedError(err); ok {
			h.logger.Warn("substreams run failed",
				zap.String("wallet", req.Address()),
				zap.String("error", runErr.Failure.Error),
				zap.Int("info_code", runErr.Failure.Info.Code),
			)
			writeJSON(w, http.StatusInternalServerError, runErr.Failure)
			return
		}
		h.logger.Error("failed to store stream result", zap.String("wallet", req.Address()), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /health
// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200  {object}  model.HealthResponse
// @Router       /health [get]
func (h *SubstreamsHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, model.HealthResponse{Status: "ok"})
}

// decodeStreamRequest parses exactly one JSON object with known fields only.
// An empty body decodes to an empty request.
func decodeStreamRequest(body io.Reader) (*model.StreamRequest, error) {
	var req model.StreamRequest

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return &req, nil
		}
		return nil, err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("body must contain a single JSON object")
	}
	return &req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
