package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"heightmap-generator/internal/gallery"
	"heightmap-generator/internal/shared/errors"
	"heightmap-generator/internal/shared/response"
)

type HeightMapHandler struct {
	service *gallery.Service
}

func NewHeightMapHandler(service *gallery.Service) *HeightMapHandler {
	return &HeightMapHandler{service: service}
}

func (h *HeightMapHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "list_heightmaps")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	entries, err := h.service.List()
	if err != nil {
		response.ErrorWithMessage(w, r, logger, err, "height maps are unavailable")
		return
	}

	response.Success(w, http.StatusOK, entries)
}

func (h *HeightMapHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_heightmap")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	name := r.PathValue("name")
	if name == "" {
		response.Error(w, r, logger, errors.Validation("height map name is required"))
		return
	}

	data, err := h.service.Read(name)
	if err != nil {
		if errors.GetType(err) == errors.ErrorTypeExternal {
			response.ErrorWithMessage(w, r, logger, err, "height map is unavailable")
			return
		}
		response.Error(w, r, logger, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
