// Package diagnostics renders the intermediate tables of the carving pipeline
// as images for visual inspection.
package diagnostics

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"

	"seam-carver/internal/carve"
	"seam-carver/internal/grid"
)

// Scale selects how raw values are mapped onto 0..255.
type Scale int

const (
	// ScaleHalf divides by two and saturates at 255.
	ScaleHalf Scale = iota
	// ScaleNormalize stretches [min, max] linearly onto [0, 255].
	ScaleNormalize
)

func ParseScale(s string) (Scale, error) {
	switch s {
	case "", "half":
		return ScaleHalf, nil
	case "normalize":
		return ScaleNormalize, nil
	default:
		return 0, fmt.Errorf("unknown diagnostics scale %q", s)
	}
}

// SeamColor is the default overlay colour.
var SeamColor = color.NRGBA{R: 0xff, G: 0x20, B: 0x20, A: 0xff}

// Levels maps every cell of g to a display level in 0..255, row-major.
func Levels[T grid.Number](g *grid.Grid[T], scale Scale) []uint8 {
	data := g.Data()
	values := make([]float64, len(data))
	for i, v := range data {
		values[i] = float64(v)
	}

	switch scale {
	case ScaleNormalize:
		lo, hi := floats.Min(values), floats.Max(values)
		floats.AddConst(-lo, values)
		if hi > lo {
			floats.Scale(255, values)
			for i := range values {
				values[i] /= hi - lo
			}
		}
	default:
		floats.Scale(0.5, values)
	}

	levels := make([]uint8, len(values))
	for i, v := range values {
		levels[i] = uint8(min(v, 255))
	}
	return levels
}

// Grayscale renders g as an 8-bit gray image.
func Grayscale[T grid.Number](g *grid.Grid[T], scale Scale) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, g.Width(), g.Height()))
	copy(out.Pix, Levels(g, scale))
	return out
}

// Heatmap renders g from dark blue (low) to yellow (high), blended in HCL.
func Heatmap[T grid.Number](g *grid.Grid[T]) *image.NRGBA {
	cold := colorful.Color{R: 0.05, G: 0.05, B: 0.35}
	hot := colorful.Color{R: 1, G: 0.9, B: 0.1}

	var palette [256]color.NRGBA
	for i := range palette {
		r, gr, b := cold.BlendHcl(hot, float64(i)/255).Clamped().RGB255()
		palette[i] = color.NRGBA{R: r, G: gr, B: b, A: 0xff}
	}

	out := image.NewNRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	for i, level := range Levels(g, ScaleNormalize) {
		c := palette[level]
		out.Pix[i*4] = c.R
		out.Pix[i*4+1] = c.G
		out.Pix[i*4+2] = c.B
		out.Pix[i*4+3] = c.A
	}
	return out
}

// SeamOverlay paints seam onto a copy of img.
func SeamOverlay(img *carve.Image, seam carve.Seam, c color.NRGBA) (*image.NRGBA, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if err := seam.Validate(img.Width, img.Height); err != nil {
		return nil, err
	}

	out := img.ToNRGBA()
	for y, x := range seam {
		out.SetNRGBA(x, y, c)
	}
	return out, nil
}
