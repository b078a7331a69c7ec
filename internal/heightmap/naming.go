package heightmap

import (
	"fmt"
	"regexp"
	"strconv"

	"heightmap-generator/internal/shared/errors"
)

const FileExt = ".png"

var fileNamePattern = regexp.MustCompile(`^heightmap_indexlaw_([+-]\d+\.\d)_sigma_(\d+\.\d)_(\d+)\.png$`)

// Name encodes the spectral index (always signed) and sigma with one decimal.
func Name(cfg GenerationConfig) string {
	sigma := cfg.SmoothingSigma
	if sigma == 0 {
		// Drop the sign of -0 so the name stays parseable.
		sigma = 0
	}
	return fmt.Sprintf("heightmap_indexlaw_%+.1f_sigma_%.1f", cfg.SpectralIndex, sigma)
}

func FileName(cfg GenerationConfig, i int) string {
	return fmt.Sprintf("%s_%d%s", Name(cfg), i, FileExt)
}

// FileInfo is what a map's file name says about how it was generated.
type FileInfo struct {
	Name           string  `json:"name"`
	SpectralIndex  float64 `json:"spectral_index"`
	SmoothingSigma float64 `json:"smoothing_sigma"`
	Index          int     `json:"index"`
}

// ParseFileName reverses FileName. Anything else, including paths, is a
// validation error.
func ParseFileName(name string) (FileInfo, error) {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return FileInfo{}, errors.Validation(fmt.Sprintf("%q is not a height map file name", name))
	}

	index, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return FileInfo{}, errors.WrapValidation("invalid spectral index", err)
	}
	sigma, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return FileInfo{}, errors.WrapValidation("invalid sigma", err)
	}
	i, err := strconv.Atoi(m[3])
	if err != nil {
		return FileInfo{}, errors.WrapValidation("invalid map index", err)
	}

	return FileInfo{
		Name:           name,
		SpectralIndex:  index,
		SmoothingSigma: sigma,
		Index:          i,
	}, nil
}
