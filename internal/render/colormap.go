package render

import (
	"image"
	"image/color"
	"math"

	"heightmap-generator/internal/heightmap"
	"heightmap-generator/internal/shared/errors"

	hsluv "github.com/hsluv/hsluv-go"
)

type Colormap string

const (
	// Greys follows matplotlib's "Greys": low is white, high is black.
	Greys Colormap = "greys"
	// Gray is the plain ramp: low is black, high is white.
	Gray Colormap = "gray"
	// Terrain ramps from deep blue through green to pale brown in HSLuv.
	Terrain Colormap = "terrain"
)

func ParseColormap(name string) (Colormap, error) {
	switch cm := Colormap(name); cm {
	case Greys, Gray, Terrain:
		return cm, nil
	default:
		return "", errors.InvalidConfigurationf("unknown colormap %q", name)
	}
}

var terrainPalette = newTerrainPalette(256)

func newTerrainPalette(n int) []color.RGBA {
	pal := make([]color.RGBA, n)
	for i := range pal {
		t := float64(i) / float64(n-1)
		r, g, b := hsluv.HsluvToRGB(
			250-210*t,
			85-25*t,
			30+60*t,
		)
		pal[i] = color.RGBA{
			R: uint8(clamp(r) * 0xff),
			G: uint8(clamp(g) * 0xff),
			B: uint8(clamp(b) * 0xff),
			A: 0xff,
		}
	}
	return pal
}

// Image renders hm with one pixel per cell. Values are clamped to [0,1].
func Image(hm *heightmap.Field, cm Colormap) (image.Image, error) {
	if hm == nil || hm.Width < 1 || hm.Height < 1 || len(hm.Values) != hm.Width*hm.Height {
		return nil, errors.Validation("height map is empty or malformed")
	}

	bounds := image.Rect(0, 0, hm.Width, hm.Height)
	switch cm {
	case Greys, Gray:
		img := image.NewGray16(bounds)
		for y := 0; y < hm.Height; y++ {
			for x := 0; x < hm.Width; x++ {
				v := clamp(hm.At(x, y))
				if cm == Greys {
					v = 1 - v
				}
				img.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(v * 0xffff))})
			}
		}
		return img, nil
	case Terrain:
		img := image.NewRGBA(bounds)
		last := float64(len(terrainPalette) - 1)
		for y := 0; y < hm.Height; y++ {
			for x := 0; x < hm.Width; x++ {
				img.SetRGBA(x, y, terrainPalette[int(math.Round(clamp(hm.At(x, y))*last))])
			}
		}
		return img, nil
	default:
		return nil, errors.InvalidConfigurationf("unknown colormap %q", string(cm))
	}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}
