package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"heightmap-generator/internal/shared/response"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Storage   string `json:"storage"`
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping() error
}

type HealthHandler struct {
	storage Pinger
}

func NewHealthHandler(storage Pinger) *HealthHandler {
	return &HealthHandler{storage: storage}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	storageStatus := "unavailable"
	if err := h.storage.Ping(); err == nil {
		storageStatus = "available"
	} else {
		logger.Warn("Output directory check failed", "error", err)
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Storage:   storageStatus,
	}

	response.Success(w, http.StatusOK, resp)
}
