package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"heightmap-generator/internal/batch"
	"heightmap-generator/internal/heightmap"
	"heightmap-generator/internal/render"
	"heightmap-generator/internal/shared/config"
	"heightmap-generator/internal/shared/logger"

	"gopkg.in/src-d/go-billy.v4/osfs"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Height map generation failed", "error", err)
		os.Exit(1)
	}
	fmt.Println("Done!")
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	logger.Init()

	cfg := config.GlobalConfig
	log := slog.With("component", "generate")

	colormap, err := render.ParseColormap(cfg.Output.Colormap)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	writer := render.NewWriter(osfs.New("."), cfg.Output.Dir, colormap, slog.Default())
	service := batch.NewService(writer, slog.Default())

	result, err := service.Run(ctx, batch.Options{
		Count: cfg.Generation.Count,
		Generation: heightmap.GenerationConfig{
			GridSize:       cfg.Generation.GridSize,
			SmoothingSigma: cfg.Generation.SmoothingSigma,
			SpectralIndex:  cfg.Generation.SpectralIndex,
			BoxLength:      cfg.Generation.BoxLength,
			Smooth:         cfg.Generation.Smooth,
		},
		Seed:     cfg.Random.Seed,
		SeedMode: batch.SeedMode(cfg.Random.SeedMode),
	})
	if err != nil {
		return err
	}

	log.Info("Height maps written",
		"count", len(result.Files),
		"dir", cfg.Output.Dir,
		"colormap", colormap,
		"duration", result.Duration,
	)
	return nil
}
