package heightmap

// GenerationConfig holds the parameters of a generator. It is copied on
// construction and never mutated afterwards.
type GenerationConfig struct {
	// GridSize is the side length of the square output grid.
	GridSize int
	// SmoothingSigma is the gaussian filter width in grid units.
	SmoothingSigma float64
	// SpectralIndex is the exponent of the power-law spectrum. 0 gives white
	// noise; more negative values favour large-scale structure.
	SpectralIndex float64
	// BoxLength is the physical side of the grid. Zero means GridSize, so one
	// cell is one unit.
	BoxLength float64
	// Smooth enables the spline resample and gaussian filter stage.
	Smooth bool
}

func (c GenerationConfig) boxLength() float64 {
	if c.BoxLength == 0 {
		return float64(c.GridSize)
	}
	return c.BoxLength
}

// Field is a row-major two dimensional grid of values.
type Field struct {
	Width  int
	Height int
	Values []float64
}

func NewField(width, height int) *Field {
	return &Field{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

func (f *Field) At(x, y int) float64 {
	return f.Values[y*f.Width+x]
}

func (f *Field) Set(x, y int, v float64) {
	f.Values[y*f.Width+x] = v
}

func (f *Field) Row(y int) []float64 {
	return f.Values[y*f.Width : (y+1)*f.Width]
}

func (f *Field) Clone() *Field {
	values := make([]float64, len(f.Values))
	copy(values, f.Values)
	return &Field{Width: f.Width, Height: f.Height, Values: values}
}

func (f *Field) valid() bool {
	return f != nil && f.Width > 0 && f.Height > 0 && len(f.Values) == f.Width*f.Height
}
