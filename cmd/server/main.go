package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"heightmap-generator/internal/gallery"
	"heightmap-generator/internal/middleware"
	"heightmap-generator/internal/server"
	"heightmap-generator/internal/shared/config"
	"heightmap-generator/internal/shared/logger"

	"gopkg.in/src-d/go-billy.v4/osfs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	logger.Init()

	cfg := config.GlobalConfig
	log := slog.With("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	galleryService := gallery.NewService(osfs.New("."), cfg.Output.Dir, slog.Default())
	if err := galleryService.Ping(); err != nil {
		log.Warn("Output directory not ready, run the generator first", "dir", cfg.Output.Dir, "error", err)
	}

	mux := server.NewRoutes(galleryService, slog.Default()).Setup()
	rateLimiter := middleware.NewRateLimiter(ctx, cfg.RateLimit)
	cors := middleware.NewCORS(cfg.Frontend)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      cors.Middleware(rateLimiter.Middleware(mux)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Height map gallery starting", "addr", srv.Addr, "dir", cfg.Output.Dir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
