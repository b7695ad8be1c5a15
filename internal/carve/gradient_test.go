package carve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seam-carver/internal/grid"
)

func TestSobelUniformPlaneIsFlat(t *testing.T) {
	plane, err := grid.New[uint8](4, 4)
	require.NoError(t, err)
	plane.Fill(200)

	mag, err := Sobel{}.Magnitude(plane)
	require.NoError(t, err)
	for _, v := range mag.Data() {
		assert.Zero(t, v)
	}
}

func TestSobelVerticalEdge(t *testing.T) {
	plane := gridOf(t, [][]uint8{
		{0, 0, 255},
		{0, 0, 255},
		{0, 0, 255},
	})

	mag, err := Sobel{}.Magnitude(plane)
	require.NoError(t, err)

	// Replicated borders: column 0 sees itself on the left, column 2 on the right.
	assert.Equal(t, []uint16{0, 1020, 1020}, mag.Row(1))
	assert.Equal(t, []uint16{0, 1020, 1020}, mag.Row(0))
}

func TestSobelDiagonalMagnitude(t *testing.T) {
	plane := gridOf(t, [][]uint8{
		{0, 0, 0},
		{0, 0, 10},
		{0, 10, 10},
	})
	mag, err := Sobel{}.Magnitude(plane)
	require.NoError(t, err)

	// gx = 10 + 20 = 30 - 0, gy = 20 + 10 = 30 at the centre.
	v, err := mag.Get(1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint16(math.Sqrt(30*30+30*30)), v)
}

func TestMagnitudeOfSaturates(t *testing.T) {
	assert.Equal(t, uint16(5), MagnitudeOf(3, 4))
	assert.Equal(t, uint16(1), MagnitudeOf(-1, -1))
	assert.Equal(t, uint16(math.MaxUint16), MagnitudeOf(100000, 0))
}

func TestGradientFieldBorderIsSentinel(t *testing.T) {
	img := randomImage(t, 9, 7, 1)
	field, err := GradientField(img, Sobel{}, false)
	require.NoError(t, err)

	w, h := field.Width(), field.Height()
	require.Equal(t, img.Width, w)
	require.Equal(t, img.Height, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if y == 0 || y == h-1 || x == 0 || x == w-1 {
				v, err := field.Get(y, x)
				require.NoError(t, err)
				assert.Equal(t, BorderEnergy, v, "(%d,%d)", y, x)
			}
		}
	}
}

func TestGradientFieldSumsChannels(t *testing.T) {
	img := randomImage(t, 6, 5, 2)
	field, err := GradientField(img, Sobel{}, false)
	require.NoError(t, err)

	planes, err := Decompose(img)
	require.NoError(t, err)
	var mags [Channels]*grid.Grid[uint16]
	for c := range planes {
		mags[c], err = Sobel{}.Magnitude(planes[c])
		require.NoError(t, err)
	}

	for y := 1; y < img.Height-1; y++ {
		for x := 1; x < img.Width-1; x++ {
			var want uint16
			for _, m := range mags {
				v, err := m.Get(y, x)
				require.NoError(t, err)
				want += v
			}
			got, err := field.Get(y, x)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}
}

func TestGradientFieldSaturatesChannelSum(t *testing.T) {
	img := uniformImage(t, 4, 4, 0)
	field, err := GradientField(img, constDetector{value: 40000}, false)
	require.NoError(t, err)

	v, err := field.Get(1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint16(math.MaxUint16), v)
}

func TestGradientFieldIsDeterministic(t *testing.T) {
	img := randomImage(t, 12, 8, 3)
	first, err := GradientField(img, Sobel{}, false)
	require.NoError(t, err)
	second, err := GradientField(img, Sobel{}, false)
	require.NoError(t, err)
	parallel, err := GradientField(img, Sobel{}, true)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.True(t, first.Equal(parallel))
}

func TestGradientFieldUniformImage(t *testing.T) {
	img := uniformImage(t, 5, 3, 128)
	field, err := GradientField(img, nil, false)
	require.NoError(t, err)

	assert.Equal(t, []uint16{100, 100, 100, 100, 100}, field.Row(0))
	assert.Equal(t, []uint16{100, 0, 0, 0, 100}, field.Row(1))
	assert.Equal(t, []uint16{100, 100, 100, 100, 100}, field.Row(2))
}

func TestGradientFieldPropagatesDetectorError(t *testing.T) {
	img := uniformImage(t, 3, 3, 0)
	_, err := GradientField(img, narrowFailDetector{minWidth: 10}, false)
	assert.ErrorIs(t, err, errDetector)

	_, err = GradientField(img, narrowFailDetector{minWidth: 10}, true)
	assert.ErrorIs(t, err, errDetector)
}
