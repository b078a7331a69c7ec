package heightmap

import (
	"testing"

	"heightmap-generator/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	f := &Field{Width: 3, Height: 2, Values: []float64{3, -1, 7, 5, 1, -1}}

	hm, err := Normalize(f)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0, 1, 0.75, 0.25, 0}, hm.Values)
	assert.Equal(t, []float64{3, -1, 7, 5, 1, -1}, f.Values, "input must not be modified")
}

func TestNormalizeIdempotent(t *testing.T) {
	hm, err := Normalize(&Field{Width: 4, Height: 1, Values: []float64{0.2, 9.1, -3.3, 4.4}})
	require.NoError(t, err)

	again, err := Normalize(hm)
	require.NoError(t, err)
	assert.InDeltaSlice(t, hm.Values, again.Values, 1e-15)
}

func TestNormalizeMonotonic(t *testing.T) {
	raw := []float64{-4.5, 2.25, 2.25, 10, -0.125, 3.5, 7, -4.5, 0}
	hm, err := Normalize(&Field{Width: 3, Height: 3, Values: raw})
	require.NoError(t, err)

	for i := range raw {
		for j := range raw {
			switch {
			case raw[i] < raw[j]:
				assert.Less(t, hm.Values[i], hm.Values[j])
			case raw[i] == raw[j]:
				assert.Equal(t, hm.Values[i], hm.Values[j])
			}
		}
	}
}

func TestNormalizeDegenerate(t *testing.T) {
	for _, f := range []*Field{
		{Width: 2, Height: 2, Values: []float64{7, 7, 7, 7}},
		{Width: 1, Height: 1, Values: []float64{0}},
	} {
		_, err := Normalize(f)
		require.Error(t, err)
		assert.Equal(t, errors.ErrorTypeDegenerateField, errors.GetType(err))
	}

	_, err := Normalize(&Field{Width: 2, Height: 2, Values: []float64{1}})
	assert.Equal(t, errors.ErrorTypeInvalidConfiguration, errors.GetType(err))
}

func TestReflect(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 4, 0},
		{3, 4, 3},
		{-1, 4, 0},
		{-2, 4, 1},
		{4, 4, 3},
		{5, 4, 2},
		{8, 4, 0},
		{-9, 4, 0},
		{2, 1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, reflect(tt.i, tt.n), "reflect(%d, %d)", tt.i, tt.n)
	}
}

func TestGaussianKernel(t *testing.T) {
	kernel := gaussianKernel(1)
	require.Len(t, kernel, 9)

	var sum float64
	for i, w := range kernel {
		sum += w
		assert.InDelta(t, w, kernel[len(kernel)-1-i], 1e-15)
	}
	assert.InDelta(t, 1, sum, 1e-12)
	assert.Greater(t, kernel[4], kernel[3])
}

func TestGaussianFilterZeroSigmaCopies(t *testing.T) {
	f := &Field{Width: 3, Height: 2, Values: []float64{1, 2, 3, 4, 5, 6}}

	out := GaussianFilter(f, 0)
	assert.Equal(t, f.Values, out.Values)
	out.Values[0] = 99
	assert.Equal(t, 1.0, f.Values[0])
}

func TestGaussianFilterKeepsConstantBorders(t *testing.T) {
	f := NewField(10, 7)
	for i := range f.Values {
		f.Values[i] = 0.6
	}

	out := GaussianFilter(f, 3)
	for _, v := range out.Values {
		assert.InDelta(t, 0.6, v, 1e-12)
	}
}

func TestGaussianFilterImpulse(t *testing.T) {
	f := NewField(21, 21)
	f.Set(10, 10, 1)

	out := GaussianFilter(f, 1.5)

	var sum float64
	for _, v := range out.Values {
		sum += v
	}
	assert.InDelta(t, 1, sum, 1e-12)
	assert.InDelta(t, out.At(9, 10), out.At(11, 10), 1e-15)
	assert.InDelta(t, out.At(10, 9), out.At(10, 11), 1e-15)
	assert.InDelta(t, out.At(9, 10), out.At(10, 9), 1e-15)
	assert.Less(t, out.At(10, 10), 1.0)
}

func TestResampleIdentity(t *testing.T) {
	f := &Field{Width: 2, Height: 2, Values: []float64{1, 2, 3, 4}}

	out, err := Resample(f, 2)
	require.NoError(t, err)
	assert.Equal(t, f.Values, out.Values)
	assert.NotSame(t, &f.Values[0], &out.Values[0])
}

func TestResampleReproducesPlanes(t *testing.T) {
	tests := []struct {
		name string
		n    int
		size int
	}{
		{"cubic upsample", 5, 9},
		{"cubic downsample", 8, 3},
		{"linear", 3, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs, _ := axis(tt.n, tt.size)
			plane := func(x, y float64) float64 { return 2*x - 0.5*y + 1 }

			f := NewField(tt.n, tt.n)
			for y := 0; y < tt.n; y++ {
				for x := 0; x < tt.n; x++ {
					f.Set(x, y, plane(xs[x], xs[y]))
				}
			}

			out, err := Resample(f, tt.size)
			require.NoError(t, err)
			require.Equal(t, tt.size, out.Width)
			require.Equal(t, tt.size, out.Height)

			_, qs := axis(tt.n, tt.size)
			for y := 0; y < tt.size; y++ {
				for x := 0; x < tt.size; x++ {
					assert.InDelta(t, plane(qs[x], qs[y]), out.At(x, y), 1e-9)
				}
			}
		})
	}
}

func TestResampleSingleCell(t *testing.T) {
	out, err := Resample(&Field{Width: 1, Height: 1, Values: []float64{0.3}}, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3, 0.3, 0.3, 0.3, 0.3, 0.3, 0.3, 0.3, 0.3}, out.Values)
}

func TestSmoothZeroSigmaIsResample(t *testing.T) {
	g, err := New(GenerationConfig{GridSize: 6, SmoothingSigma: 0}, &stubSampler{}, discard)
	require.NoError(t, err)

	f := NewField(4, 4)
	for i := range f.Values {
		f.Values[i] = float64((i * 7) % 5)
	}

	smoothed, err := g.Smooth(f)
	require.NoError(t, err)
	resampled, err := Resample(f, 6)
	require.NoError(t, err)
	assert.InDeltaSlice(t, resampled.Values, smoothed.Values, 1e-12)

	same, err := g.Smooth(smoothed)
	require.NoError(t, err)
	assert.Equal(t, smoothed.Values, same.Values)
}
