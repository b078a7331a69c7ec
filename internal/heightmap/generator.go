// Package heightmap turns gaussian random fields with a power-law spectrum
// into normalized height maps.
package heightmap

import (
	"context"
	"log/slog"
	"math"

	"heightmap-generator/internal/shared/errors"
	"heightmap-generator/internal/spectrum"
)

// Generator runs the spectrum → random field → normalized height map
// pipeline, with an optional smoothing stage. It keeps the last map it
// produced. A Generator is not safe for concurrent use.
type Generator struct {
	cfg      GenerationConfig
	sampler  spectrum.Sampler
	spectrum spectrum.Func
	field    *Field
	logger   *slog.Logger
}

// New validates cfg and returns a generator drawing fields from sampler.
// A 1×1 grid is accepted, but its only mode is the zero mode, so every
// Generate call on it fails with a degenerate_field error.
func New(cfg GenerationConfig, sampler spectrum.Sampler, logger *slog.Logger) (*Generator, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if sampler == nil {
		return nil, errors.InvalidConfigurationf("sampler is required")
	}

	return &Generator{
		cfg:      cfg,
		sampler:  sampler,
		spectrum: spectrum.PowerLaw(cfg.SpectralIndex),
		logger:   logger.With("component", "heightmap_generator", "name", Name(cfg)),
	}, nil
}

func validate(cfg GenerationConfig) error {
	if cfg.GridSize < 1 {
		return errors.InvalidConfigurationf("grid size must be at least 1, got %d", cfg.GridSize)
	}
	if cfg.SmoothingSigma < 0 || math.IsNaN(cfg.SmoothingSigma) || math.IsInf(cfg.SmoothingSigma, 0) {
		return errors.InvalidConfigurationf("smoothing sigma must be finite and non-negative, got %v", cfg.SmoothingSigma)
	}
	if math.IsNaN(cfg.SpectralIndex) || math.IsInf(cfg.SpectralIndex, 0) {
		return errors.InvalidConfigurationf("spectral index must be finite, got %v", cfg.SpectralIndex)
	}
	if cfg.BoxLength < 0 || math.IsNaN(cfg.BoxLength) || math.IsInf(cfg.BoxLength, 0) {
		return errors.InvalidConfigurationf("box length must be finite and non-negative, got %v", cfg.BoxLength)
	}
	return nil
}

func (g *Generator) Config() GenerationConfig {
	return g.cfg
}

// PowerSpectrum is k^SpectralIndex, with the zero-frequency mode set to 0.
func (g *Generator) PowerSpectrum(k float64) float64 {
	return g.spectrum(k)
}

// Field returns the most recently generated height map, or nil.
func (g *Generator) Field() *Field {
	return g.field
}

// Name identifies the generator parameters, e.g.
// heightmap_indexlaw_-3.0_sigma_5.0.
func (g *Generator) Name() string {
	return Name(g.cfg)
}

// FileName is the image file name for the i-th map of a batch.
func (g *Generator) FileName(i int) string {
	return FileName(g.cfg, i)
}

// Generate samples a fresh field, normalizes it into [0,1] and, when enabled,
// smooths it. Sampler errors are returned unchanged.
func (g *Generator) Generate(ctx context.Context) (*Field, error) {
	n := g.cfg.GridSize
	logger := g.logger.With("operation", "generate", "grid_size", n)
	logger.Debug("Generating height map")

	values, err := g.sampler.Sample(ctx, n, g.cfg.boxLength(), g.PowerSpectrum)
	if err != nil {
		logger.Debug("Sampler failed", "error", err)
		return nil, err
	}
	if len(values) != n*n {
		return nil, errors.SamplerFailuref("sampler returned %d values, want %d", len(values), n*n)
	}

	hm, err := Normalize(&Field{Width: n, Height: n, Values: values})
	if err != nil {
		return nil, err
	}

	if g.cfg.Smooth {
		smoothed, err := g.Smooth(hm)
		if err != nil {
			return nil, err
		}
		// Blurring pulls the extremes inwards; rescale so the map still spans [0,1].
		hm, err = Normalize(smoothed)
		if err != nil {
			return nil, err
		}
	}

	g.field = hm
	logger.Debug("Height map generated", "smoothed", g.cfg.Smooth)
	return hm, nil
}
