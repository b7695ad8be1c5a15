package carve

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"seam-carver/internal/grid"
)

// BorderEnergy is written to every border pixel of the gradient field so seams
// do not run along the image edge.
const BorderEnergy uint16 = 100

// EdgeDetector turns one intensity plane into a gradient-magnitude plane of the
// same dimensions.
type EdgeDetector interface {
	Magnitude(plane *grid.Grid[uint8]) (*grid.Grid[uint16], error)
	Name() string
}

// Sobel is the pure Go 3x3 Sobel operator with replicated borders.
type Sobel struct{}

func (Sobel) Name() string { return "sobel" }

func (Sobel) Magnitude(plane *grid.Grid[uint8]) (*grid.Grid[uint16], error) {
	if plane == nil {
		return nil, fmt.Errorf("sobel: %w", ErrEmpty)
	}
	w, h := plane.Width(), plane.Height()
	out, err := grid.New[uint16](w, h)
	if err != nil {
		return nil, fmt.Errorf("sobel: %w", err)
	}

	for y := 0; y < h; y++ {
		above := plane.Row(max(y-1, 0))
		here := plane.Row(y)
		below := plane.Row(min(y+1, h-1))
		dst := out.Row(y)
		for x := 0; x < w; x++ {
			l, r := max(x-1, 0), min(x+1, w-1)

			gx := -int(above[l]) + int(above[r]) -
				2*int(here[l]) + 2*int(here[r]) -
				int(below[l]) + int(below[r])
			gy := -int(above[l]) - 2*int(above[x]) - int(above[r]) +
				int(below[l]) + 2*int(below[x]) + int(below[r])

			dst[x] = MagnitudeOf(gx, gy)
		}
	}
	return out, nil
}

// MagnitudeOf returns trunc(sqrt(gx*gx + gy*gy)) clamped to uint16.
func MagnitudeOf(gx, gy int) uint16 {
	m := math.Sqrt(float64(gx*gx + gy*gy))
	if m >= math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(m)
}

// GradientField runs detector over each channel of img, sums the magnitudes
// with saturation and stamps BorderEnergy on the border.
func GradientField(img *Image, detector EdgeDetector, parallel bool) (*grid.Grid[uint16], error) {
	if detector == nil {
		detector = Sobel{}
	}
	planes, err := Decompose(img)
	if err != nil {
		return nil, err
	}

	var mags [Channels]*grid.Grid[uint16]
	if parallel {
		var g errgroup.Group
		for c := range planes {
			g.Go(func() error {
				m, err := detector.Magnitude(planes[c])
				mags[c] = m
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("gradient (%s): %w", detector.Name(), err)
		}
	} else {
		for c := range planes {
			m, err := detector.Magnitude(planes[c])
			if err != nil {
				return nil, fmt.Errorf("gradient (%s): %w", detector.Name(), err)
			}
			mags[c] = m
		}
	}

	for c, m := range mags {
		if m == nil {
			return nil, fmt.Errorf("gradient (%s): channel %d: %w", detector.Name(), c, ErrEmpty)
		}
		if m.Width() != img.Width || m.Height() != img.Height {
			return nil, fmt.Errorf("%w: channel %d magnitude is %dx%d, image is %dx%d",
				ErrDimensionMismatch, c, m.Width(), m.Height(), img.Width, img.Height)
		}
	}

	field, err := grid.New[uint16](img.Width, img.Height)
	if err != nil {
		return nil, err
	}
	sum := field.Data()
	r, g, b := mags[Red].Data(), mags[Green].Data(), mags[Blue].Data()
	for i := range sum {
		total := uint32(r[i]) + uint32(g[i]) + uint32(b[i])
		if total > math.MaxUint16 {
			total = math.MaxUint16
		}
		sum[i] = uint16(total)
	}

	stampBorder(field)
	return field, nil
}

func stampBorder(field *grid.Grid[uint16]) {
	w, h := field.Width(), field.Height()
	top, bottom := field.Row(0), field.Row(h-1)
	for x := 0; x < w; x++ {
		top[x] = BorderEnergy
		bottom[x] = BorderEnergy
	}
	for y := 0; y < h; y++ {
		row := field.Row(y)
		row[0] = BorderEnergy
		row[w-1] = BorderEnergy
	}
}
