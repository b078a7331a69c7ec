package spectrum

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"

	"heightmap-generator/internal/shared/errors"
)

// GaussianSampler synthesizes fields by spectral filtering of white noise.
//
// Real white noise is drawn on the grid and forward transformed, which gives
// hermitian gaussian Fourier modes with independent uniform phases. Each mode
// is scaled by sqrt(pk(|k|)) and transformed back; the imaginary part of the
// result is zero up to rounding and is dropped.
//
// Frequencies use the fftfreq ordering and k = 2π·f·n/boxLength, so with
// boxLength == n the grid spacing is one unit. The forward transform is
// unnormalized and the inverse carries 1/n².
//
// A GaussianSampler is not safe for concurrent use; give each goroutine its
// own source.
type GaussianSampler struct {
	rng    *rand.Rand
	logger *slog.Logger
}

func NewGaussianSampler(rng *rand.Rand, logger *slog.Logger) *GaussianSampler {
	return &GaussianSampler{
		rng:    rng,
		logger: logger.With("component", "gaussian_sampler"),
	}
}

// NewSeededSampler returns a sampler backed by a PCG source for (seed, stream).
func NewSeededSampler(seed, stream uint64, logger *slog.Logger) *GaussianSampler {
	return NewGaussianSampler(rand.New(rand.NewPCG(seed, stream)), logger)
}

func (s *GaussianSampler) Sample(ctx context.Context, n int, boxLength float64, pk Func) ([]float64, error) {
	logger := s.logger.With("operation", "sample", "n", n, "box_length", boxLength)

	if err := ctx.Err(); err != nil {
		return nil, errors.WrapSamplerFailure("sampling cancelled", err)
	}
	if n < 1 {
		return nil, errors.SamplerFailuref("grid size must be positive, got %d", n)
	}
	if !(boxLength > 0) || math.IsInf(boxLength, 0) {
		return nil, errors.SamplerFailuref("box length must be positive and finite, got %v", boxLength)
	}
	if pk == nil {
		return nil, errors.SamplerFailuref("power spectrum is nil")
	}

	p := newPlan(n)
	amplitude, err := amplitudes(p, boxLength, pk)
	if err != nil {
		return nil, err
	}

	modes := make([]complex128, n*n)
	for i := range modes {
		modes[i] = complex(s.rng.NormFloat64(), 0)
	}

	p.forward(modes)
	for i := range modes {
		modes[i] *= complex(amplitude[i], 0)
	}
	p.inverse(modes)

	field := make([]float64, n*n)
	var maxImag float64
	for i, c := range modes {
		v := real(c)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.SamplerFailuref("non-finite value at cell %d", i)
		}
		field[i] = v
		maxImag = math.Max(maxImag, math.Abs(imag(c)))
	}

	logger.Debug("Sampled gaussian random field", "max_imag", maxImag)
	return field, nil
}

// amplitudes evaluates sqrt(pk(|k|)) for every mode in row-major order.
func amplitudes(p *plan, boxLength float64, pk Func) ([]float64, error) {
	n := p.n
	scale := 2 * math.Pi * float64(n) / boxLength

	k := make([]float64, n)
	for i := range k {
		k[i] = p.freq(i) * scale
	}

	out := make([]float64, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if x == 0 && y == 0 {
				continue
			}
			mag := math.Hypot(k[x], k[y])
			power := pk(mag)
			if math.IsNaN(power) || math.IsInf(power, 0) {
				return nil, errors.SamplerFailuref("power spectrum is not finite at k=%g", mag)
			}
			if power < 0 {
				return nil, errors.SamplerFailuref("power spectrum is negative at k=%g: %g", mag, power)
			}
			out[y*n+x] = math.Sqrt(power)
		}
	}
	return out, nil
}
