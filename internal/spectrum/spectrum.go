// Package spectrum samples isotropic gaussian random fields whose power
// spectrum is given as a function of spatial frequency magnitude.
package spectrum

import (
	"context"
	"math"
)

// Func maps a spatial frequency magnitude k to the expected squared amplitude
// of the Fourier modes at that frequency.
type Func func(k float64) float64

// PowerLaw returns k^index. The zero mode is pinned to 0: it only carries the
// global offset of the field, and k^index is singular there for negative
// indexes.
func PowerLaw(index float64) Func {
	return func(k float64) float64 {
		if k == 0 {
			return 0
		}
		return math.Pow(k, index)
	}
}

// Sampler produces one realization of a gaussian random field on an n×n grid
// of physical side boxLength. The result is row-major.
type Sampler interface {
	Sample(ctx context.Context, n int, boxLength float64, pk Func) ([]float64, error)
}
