package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/AlexZinkM/substreams-relay/internal/model"
	"github.com/AlexZinkM/substreams-relay/internal/observability"
	"github.com/AlexZinkM/substreams-relay/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	staticPrefix    = store.StaticPrefix
	requestIDHeader = "X-Request-ID"
)

// statusRecorder captures the status code and body size written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// RequestLogger logs every request and records HTTP metrics.
// It assigns an X-Request-ID unless the client sent one.
func RequestLogger(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		observability.RecordHTTPRequest(r.Method, routeLabel(r.URL.Path), status, duration)

		level := zap.InfoLevel
		switch {
		case status >= 500:
			level = zap.ErrorLevel
		case status >= 400:
			level = zap.WarnLevel
		}
		logger.Check(level, "http_request").Write(
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("client_ip", r.RemoteAddr),
			zap.Int("bytes", rec.bytes),
		)
	})
}

// Recover turns a panicking handler into a 500 JSON response
func Recover(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rv := recover()
			if rv == nil {
				return
			}
			if rv == http.ErrAbortHandler {
				panic(rv)
			}

			logger.Error("handler panic",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Any("panic", rv),
				zap.Stack("stack"),
			)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(model.ErrorResponse{Error: "internal server error"})
		}()

		next.ServeHTTP(w, r)
	})
}

// routeLabel collapses file paths so metrics labels stay bounded
func routeLabel(path string) string {
	switch {
	case strings.HasPrefix(path, staticPrefix):
		return staticPrefix
	case strings.HasPrefix(path, "/swagger/"):
		return "/swagger/"
	}
	switch path {
	case "/health", "/metrics", "/substreams/info", "/stream", "/stream/qr":
		return path
	}
	return "other"
}
