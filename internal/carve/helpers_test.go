package carve

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"seam-carver/internal/grid"
)

func uniformImage(t *testing.T, width, height int, v uint8) *Image {
	t.Helper()
	img, err := NewImage(width, height)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func randomImage(t *testing.T, width, height int, seed uint64) *Image {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	img, err := NewImage(width, height)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.IntN(256))
	}
	return img
}

// labelledImage stores the row in R and the column in G of every pixel.
func labelledImage(t *testing.T, width, height int) *Image {
	t.Helper()
	img, err := NewImage(width, height)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			require.NoError(t, img.Set(y, x, uint8(y), uint8(x), 7))
		}
	}
	return img
}

func gridOf[T grid.Number](t *testing.T, rows [][]T) *grid.Grid[T] {
	t.Helper()
	var data []T
	for _, r := range rows {
		require.Len(t, r, len(rows[0]))
		data = append(data, r...)
	}
	g, err := grid.FromSlice(len(rows[0]), len(rows), data)
	require.NoError(t, err)
	return g
}

// constDetector reports the same magnitude everywhere.
type constDetector struct {
	value uint16
}

func (d constDetector) Name() string { return "const" }

func (d constDetector) Magnitude(plane *grid.Grid[uint8]) (*grid.Grid[uint16], error) {
	g, err := grid.New[uint16](plane.Width(), plane.Height())
	if err != nil {
		return nil, err
	}
	g.Fill(d.value)
	return g, nil
}

// narrowFailDetector fails once the image is narrower than minWidth.
type narrowFailDetector struct {
	minWidth int
}

var errDetector = errors.New("detector failed")

func (d narrowFailDetector) Name() string { return "narrow-fail" }

func (d narrowFailDetector) Magnitude(plane *grid.Grid[uint8]) (*grid.Grid[uint16], error) {
	if plane.Width() < d.minWidth {
		return nil, errDetector
	}
	return Sobel{}.Magnitude(plane)
}

func requireValidSeam(t *testing.T, seam Seam, width, height int) {
	t.Helper()
	require.Len(t, seam, height)
	for y, x := range seam {
		require.GreaterOrEqual(t, x, 0)
		require.Less(t, x, width)
		if y > 0 {
			d := x - seam[y-1]
			require.True(t, d >= -1 && d <= 1, "row %d jumps from %d to %d", y, seam[y-1], x)
		}
	}
}
