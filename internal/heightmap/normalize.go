package heightmap

import (
	"heightmap-generator/internal/shared/errors"

	"gonum.org/v1/gonum/floats"
)

// Normalize rescales f affinely so its minimum maps to 0 and its maximum to 1.
// The input is left untouched. A constant field has no range to rescale and
// yields a degenerate field error instead of NaNs.
func Normalize(f *Field) (*Field, error) {
	if !f.valid() {
		return nil, errors.InvalidConfigurationf("field is empty or malformed")
	}

	lo, hi := floats.Min(f.Values), floats.Max(f.Values)
	span := hi - lo
	if !(span > 0) {
		return nil, errors.DegenerateFieldf("cannot normalize constant field (min = max = %v)", lo)
	}

	out := NewField(f.Width, f.Height)
	for i, v := range f.Values {
		out.Values[i] = (v - lo) / span
	}
	return out, nil
}
