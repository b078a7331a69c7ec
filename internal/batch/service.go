// Package batch generates a numbered series of height maps and hands each one
// to an image writer.
package batch

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"heightmap-generator/internal/heightmap"
	"heightmap-generator/internal/shared/errors"
	"heightmap-generator/internal/spectrum"

	"github.com/dgravesa/go-parallel/parallel"
)

type SeedMode string

const (
	// SeedModeStream draws every map from one random sequence, in order.
	SeedModeStream SeedMode = "stream"
	// SeedModeInstance gives map i its own source seeded from (Seed, i), so
	// maps can be generated in parallel and each is reproducible on its own.
	SeedModeInstance SeedMode = "instance"
)

type Options struct {
	Count      int
	Generation heightmap.GenerationConfig
	Seed       uint64
	SeedMode   SeedMode
}

type Result struct {
	Files    []string
	Duration time.Duration
}

// ImageWriter stores one rendered map and returns where it went.
type ImageWriter interface {
	Write(name string, hm *heightmap.Field) (string, error)
}

type Service struct {
	writer ImageWriter
	logger *slog.Logger
}

func NewService(writer ImageWriter, logger *slog.Logger) *Service {
	logger.Debug("Initializing batch service")

	return &Service{
		writer: writer,
		logger: logger,
	}
}

// Run generates opts.Count maps. It stops at the first failure: maps not yet
// started are skipped and the lowest-indexed error is returned.
func (s *Service) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := s.logger.With("component", "batch_service", "operation", "run",
		"count", opts.Count, "seed", opts.Seed, "seed_mode", opts.SeedMode,
		"name", heightmap.Name(opts.Generation))

	if opts.Count < 1 {
		return nil, errors.InvalidConfigurationf("map count must be at least 1, got %d", opts.Count)
	}

	logger.Info("Starting height map batch")
	start := time.Now()

	var (
		files []string
		err   error
	)
	switch opts.SeedMode {
	case SeedModeStream:
		files, err = s.runStream(ctx, opts)
	case SeedModeInstance:
		files, err = s.runInstances(ctx, opts)
	default:
		return nil, errors.InvalidConfigurationf("unknown seed mode %q", opts.SeedMode)
	}
	if err != nil {
		logger.Error("Height map batch failed", "error", err)
		return nil, err
	}

	result := &Result{Files: files, Duration: time.Since(start)}
	logger.Info("Height map batch completed", "files", len(files), "duration", result.Duration)
	return result, nil
}

func (s *Service) runStream(ctx context.Context, opts Options) ([]string, error) {
	sampler := spectrum.NewSeededSampler(opts.Seed, 0, s.logger)

	files := make([]string, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		path, err := s.generateOne(ctx, opts.Generation, sampler, i)
		if err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}

func (s *Service) runInstances(ctx context.Context, opts Options) ([]string, error) {
	files := make([]string, opts.Count)
	errs := make([]error, opts.Count)
	var failed atomic.Bool

	parallel.For(opts.Count, func(i int) {
		if failed.Load() || ctx.Err() != nil {
			return
		}

		sampler := spectrum.NewSeededSampler(opts.Seed, uint64(i)+1, s.logger)
		path, err := s.generateOne(ctx, opts.Generation, sampler, i)
		if err != nil {
			errs[i] = err
			failed.Store(true)
			return
		}
		files[i] = path
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapInternal("batch cancelled", err)
	}
	return files, nil
}

func (s *Service) generateOne(ctx context.Context, cfg heightmap.GenerationConfig, sampler spectrum.Sampler, i int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WrapInternal("batch cancelled", err)
	}

	gen, err := heightmap.New(cfg, sampler, s.logger)
	if err != nil {
		return "", err
	}

	hm, err := gen.Generate(ctx)
	if err != nil {
		return "", err
	}

	path, err := s.writer.Write(gen.FileName(i), hm)
	if err != nil {
		return "", err
	}

	s.logger.Debug("Height map saved", "component", "batch_service", "index", i, "path", path)
	return path, nil
}
