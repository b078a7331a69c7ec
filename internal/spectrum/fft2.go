package spectrum

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// plan runs square 2-D transforms as a row pass followed by a column pass of
// the same 1-D complex FFT.
type plan struct {
	n   int
	fft *fourier.CmplxFFT
	col []complex128
	out []complex128
}

func newPlan(n int) *plan {
	return &plan{
		n:   n,
		fft: fourier.NewCmplxFFT(n),
		col: make([]complex128, n),
		out: make([]complex128, n),
	}
}

// freq returns the frequency of coefficient i in cycles per sample, in the
// usual fftfreq ordering (0, 1/n, ..., then the negative half).
func (p *plan) freq(i int) float64 {
	return p.fft.Freq(i)
}

// forward replaces data with its unnormalized 2-D DFT.
func (p *plan) forward(data []complex128) {
	p.pass(data, p.fft.Coefficients)
}

// inverse replaces data with its inverse 2-D DFT, scaled by 1/n².
func (p *plan) inverse(data []complex128) {
	p.pass(data, p.fft.Sequence)

	scale := complex(1/float64(p.n*p.n), 0)
	for i := range data {
		data[i] *= scale
	}
}

func (p *plan) pass(data []complex128, apply func(dst, src []complex128) []complex128) {
	n := p.n
	for y := 0; y < n; y++ {
		row := data[y*n : (y+1)*n]
		apply(p.out, row)
		copy(row, p.out)
	}
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			p.col[y] = data[y*n+x]
		}
		apply(p.out, p.col)
		for y := 0; y < n; y++ {
			data[y*n+x] = p.out[y]
		}
	}
}
