package heightmap

import (
	"math"

	"heightmap-generator/internal/shared/errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// truncate is the gaussian kernel radius in standard deviations.
const truncate = 4.0

// Smooth resamples f onto a GridSize×GridSize cubic spline surface and blurs
// it with an isotropic gaussian of width SmoothingSigma.
func (g *Generator) Smooth(f *Field) (*Field, error) {
	if !f.valid() {
		return nil, errors.InvalidConfigurationf("field is empty or malformed")
	}

	resampled, err := Resample(f, g.cfg.GridSize)
	if err != nil {
		return nil, err
	}
	return GaussianFilter(resampled, g.cfg.SmoothingSigma), nil
}

// Resample evaluates the tensor-product spline through f at size×size points.
// Nodes sit at linspace(0, n, n) along each axis and queries span the same
// interval, so an input already of that size is returned as a copy.
//
// Axes with four or more nodes use not-a-knot cubic splines; shorter axes fall
// back to linear interpolation, and a single node is held constant.
func Resample(f *Field, size int) (*Field, error) {
	if !f.valid() {
		return nil, errors.InvalidConfigurationf("field is empty or malformed")
	}
	if size < 1 {
		return nil, errors.InvalidConfigurationf("resample size must be at least 1, got %d", size)
	}
	if f.Width == size && f.Height == size {
		return f.Clone(), nil
	}

	// Rows first: Height × size.
	xs, qx := axis(f.Width, size)
	rows := NewField(size, f.Height)
	for y := 0; y < f.Height; y++ {
		if err := resampleLine(rows.Row(y), f.Row(y), xs, qx); err != nil {
			return nil, err
		}
	}

	// Then columns: size × size.
	ys, qy := axis(f.Height, size)
	out := NewField(size, size)
	src := make([]float64, f.Height)
	dst := make([]float64, size)
	for x := 0; x < size; x++ {
		for y := 0; y < f.Height; y++ {
			src[y] = rows.At(x, y)
		}
		if err := resampleLine(dst, src, ys, qy); err != nil {
			return nil, err
		}
		for y := 0; y < size; y++ {
			out.Set(x, y, dst[y])
		}
	}
	return out, nil
}

// axis returns node positions linspace(0, n, n) and size query positions
// spanning the first to the last node.
func axis(n, size int) (nodes, queries []float64) {
	nodes = make([]float64, n)
	if n == 1 {
		nodes[0] = 0
	} else {
		floats.Span(nodes, 0, float64(n))
	}

	queries = make([]float64, size)
	if size == 1 {
		queries[0] = nodes[0]
	} else {
		floats.Span(queries, nodes[0], nodes[n-1])
	}
	return nodes, queries
}

func resampleLine(dst, src, nodes, queries []float64) error {
	if len(src) == 1 {
		for i := range dst {
			dst[i] = src[0]
		}
		return nil
	}

	var spline interp.FittablePredictor
	if len(src) >= 4 {
		spline = &interp.NotAKnotCubic{}
	} else {
		spline = &interp.PiecewiseLinear{}
	}
	if err := spline.Fit(nodes, src); err != nil {
		return errors.WrapInternal("spline fit failed", err)
	}

	for i, q := range queries {
		dst[i] = spline.Predict(q)
	}
	return nil
}

// GaussianFilter convolves f with a separable gaussian of standard deviation
// sigma, truncated at 4σ. Borders reflect about the edge of the outermost
// cell (d c b a | a b c d | d c b a), so a constant field stays constant.
// sigma == 0 returns a copy.
func GaussianFilter(f *Field, sigma float64) *Field {
	out := f.Clone()
	if sigma <= 0 {
		return out
	}

	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2

	line := make([]float64, max(f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		row := out.Row(y)
		copy(line, row)
		convolve(row, line[:f.Width], kernel, radius)
	}

	col := make([]float64, f.Height)
	for x := 0; x < f.Width; x++ {
		for y := 0; y < f.Height; y++ {
			line[y] = out.At(x, y)
		}
		convolve(col, line[:f.Height], kernel, radius)
		for y := 0; y < f.Height; y++ {
			out.Set(x, y, col[y])
		}
	}
	return out
}

func gaussianKernel(sigma float64) []float64 {
	radius := int(truncate*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-0.5 * x * x / (sigma * sigma))
	}
	floats.Scale(1/floats.Sum(kernel), kernel)
	return kernel
}

func convolve(dst, src, kernel []float64, radius int) {
	n := len(src)
	for i := range dst {
		var sum float64
		for j, w := range kernel {
			sum += w * src[reflect(i+j-radius, n)]
		}
		dst[i] = sum
	}
}

// reflect maps any index onto [0, n) by mirroring about the outer cell edges.
func reflect(i, n int) int {
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
