package spectrum

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"heightmap-generator/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestPowerLaw(t *testing.T) {
	tests := []struct {
		index float64
		k     float64
		want  float64
	}{
		{-3, 0, 0},
		{-3, 1, 1},
		{-3, 2, 0.125},
		{0, 0, 0},
		{0, 5, 1},
		{2, 3, 9},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, PowerLaw(tt.index)(tt.k), 1e-12, "index=%v k=%v", tt.index, tt.k)
	}
}

func TestPlanRoundTrip(t *testing.T) {
	const n = 6
	p := newPlan(n)

	data := make([]complex128, n*n)
	want := make([]complex128, n*n)
	for i := range data {
		data[i] = complex(float64(i%7)-3, 0)
		want[i] = data[i]
	}

	p.forward(data)
	// The DC coefficient is the plain sum of the samples.
	var sum float64
	for _, c := range want {
		sum += real(c)
	}
	assert.InDelta(t, sum, real(data[0]), 1e-9)

	p.inverse(data)
	for i := range data {
		assert.InDelta(t, real(want[i]), real(data[i]), 1e-9)
		assert.InDelta(t, 0, imag(data[i]), 1e-9)
	}
}

func TestPlanFreqOrdering(t *testing.T) {
	p := newPlan(4)
	assert.Equal(t, []float64{0, 0.25, -0.5, -0.25}, []float64{p.freq(0), p.freq(1), p.freq(2), p.freq(3)})

	p = newPlan(5)
	assert.Equal(t, []float64{0, 0.2, 0.4, -0.4, -0.2}, []float64{p.freq(0), p.freq(1), p.freq(2), p.freq(3), p.freq(4)})
}

func TestSampleShapeAndZeroMean(t *testing.T) {
	s := NewSeededSampler(1234, 0, discard)

	field, err := s.Sample(context.Background(), 32, 32, PowerLaw(-3))
	require.NoError(t, err)
	require.Len(t, field, 32*32)

	// The zero mode is removed, so the field mean vanishes.
	var mean float64
	for _, v := range field {
		mean += v
	}
	mean /= float64(len(field))
	assert.InDelta(t, 0, mean, 1e-9)
}

func TestSampleReproducible(t *testing.T) {
	a, err := NewSeededSampler(42, 7, discard).Sample(context.Background(), 24, 24, PowerLaw(-3))
	require.NoError(t, err)
	b, err := NewSeededSampler(42, 7, discard).Sample(context.Background(), 24, 24, PowerLaw(-3))
	require.NoError(t, err)
	c, err := NewSeededSampler(43, 7, discard).Sample(context.Background(), 24, 24, PowerLaw(-3))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestSampleSpectralIndexControlsSmoothness(t *testing.T) {
	const n = 64

	white, err := NewSeededSampler(1, 0, discard).Sample(context.Background(), n, n, PowerLaw(0))
	require.NoError(t, err)
	red, err := NewSeededSampler(1, 0, discard).Sample(context.Background(), n, n, PowerLaw(-3))
	require.NoError(t, err)

	assert.Less(t, math.Abs(lagOneCorrelation(white, n)), 0.1)
	assert.Greater(t, lagOneCorrelation(red, n), 0.6)
}

func TestSampleSingleCell(t *testing.T) {
	field, err := NewSeededSampler(1, 0, discard).Sample(context.Background(), 1, 1, PowerLaw(-3))
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, field)
}

func TestSampleFailures(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name      string
		ctx       context.Context
		n         int
		boxLength float64
		pk        Func
	}{
		{"cancelled", cancelled, 8, 8, PowerLaw(-3)},
		{"zero grid", context.Background(), 0, 8, PowerLaw(-3)},
		{"zero box", context.Background(), 8, 0, PowerLaw(-3)},
		{"nil spectrum", context.Background(), 8, 8, nil},
		{"negative spectrum", context.Background(), 8, 8, func(k float64) float64 { return -k }},
		{"nan spectrum", context.Background(), 8, 8, func(float64) float64 { return math.NaN() }},
		{"overflow", context.Background(), 8, 8, PowerLaw(1e6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSeededSampler(1, 0, discard).Sample(tt.ctx, tt.n, tt.boxLength, tt.pk)
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeSamplerFailure, errors.GetType(err))
		})
	}
}

func lagOneCorrelation(field []float64, n int) float64 {
	var mean float64
	for _, v := range field {
		mean += v
	}
	mean /= float64(len(field))

	var num, den float64
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			a := field[y*n+x] - mean
			b := field[y*n+(x+1)%n] - mean
			num += a * b
			den += a * a
		}
	}
	return num / den
}
