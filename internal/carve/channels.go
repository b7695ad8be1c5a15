package carve

import (
	"fmt"

	"seam-carver/internal/grid"
)

// Plane indices returned by Decompose.
const (
	Red = iota
	Green
	Blue
)

// Decompose splits img into red, green and blue intensity planes.
func Decompose(img *Image) ([Channels]*grid.Grid[uint8], error) {
	var planes [Channels]*grid.Grid[uint8]
	if err := img.Validate(); err != nil {
		return planes, fmt.Errorf("decompose: %w", err)
	}

	for c := range planes {
		plane, err := grid.New[uint8](img.Width, img.Height)
		if err != nil {
			return planes, fmt.Errorf("decompose: %w", err)
		}
		planes[c] = plane
	}

	red, green, blue := planes[Red].Data(), planes[Green].Data(), planes[Blue].Data()
	for i, p := 0, 0; p < len(img.Pix); i, p = i+1, p+Channels {
		red[i] = img.Pix[p]
		green[i] = img.Pix[p+1]
		blue[i] = img.Pix[p+2]
	}
	return planes, nil
}
