package server

import (
	"log/slog"
	"net/http"

	"heightmap-generator/internal/gallery"
	galleryHandlers "heightmap-generator/internal/gallery/handlers"
	serverHandlers "heightmap-generator/internal/server/handlers"
)

type Routes struct {
	galleryService *gallery.Service
	logger         *slog.Logger
}

func NewRoutes(galleryService *gallery.Service, logger *slog.Logger) *Routes {
	return &Routes{
		galleryService: galleryService,
		logger:         logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.galleryService)
	heightMapHandler := galleryHandlers.NewHeightMapHandler(r.galleryService)

	mux.Handle("/api/server/health", healthHandler)
	mux.HandleFunc("/api/heightmaps", heightMapHandler.List)
	mux.HandleFunc("/api/heightmaps/{name}", heightMapHandler.Get)

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/heightmaps", "/api/heightmaps/{name}"},
	)

	return mux
}
