package carve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveSeamDropsOnePixelPerRow(t *testing.T) {
	img := labelledImage(t, 5, 3)
	before := img.Clone()

	out, err := RemoveSeam(img, Seam{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Width)
	assert.Equal(t, 3, out.Height)
	require.NoError(t, out.Validate())

	wantCols := [][]uint8{
		{1, 2, 3, 4},
		{0, 2, 3, 4},
		{0, 1, 3, 4},
	}
	for y, cols := range wantCols {
		for x, want := range cols {
			r, g, b, err := out.At(y, x)
			require.NoError(t, err)
			assert.Equal(t, uint8(y), r)
			assert.Equal(t, want, g, "row %d col %d", y, x)
			assert.Equal(t, uint8(7), b)
		}
	}

	assert.True(t, img.Equal(before), "input must not change")
}

func TestRemoveSeamLastColumn(t *testing.T) {
	img := labelledImage(t, 2, 2)
	out, err := RemoveSeam(img, Seam{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 7, 1, 0, 7}, out.Pix)
}

func TestRemoveSeamRejectsInvalidSeams(t *testing.T) {
	img := labelledImage(t, 3, 2)
	tests := []struct {
		name string
		seam Seam
	}{
		{"too short", Seam{0}},
		{"too long", Seam{0, 0, 0}},
		{"column past edge", Seam{0, 3}},
		{"negative column", Seam{-1, 0}},
		{"disconnected", Seam{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RemoveSeam(img, tt.seam)
			assert.ErrorIs(t, err, ErrSeamOutOfBounds)
			assert.ErrorIs(t, err, ErrInvariant)
		})
	}
}

func TestRemoveSeamRejectsNarrowImage(t *testing.T) {
	img := uniformImage(t, 1, 2, 0)
	_, err := RemoveSeam(img, Seam{0, 0})
	assert.ErrorIs(t, err, ErrTooNarrow)
}

func TestRemoveSeamFromRandomImages(t *testing.T) {
	r := NewResizer(Options{}, nil)
	for seed := uint64(1); seed <= 10; seed++ {
		img := randomImage(t, 2+int(seed), 1+int(seed%5), seed)
		out, analysis, err := r.Step(img)
		require.NoError(t, err)
		assert.Equal(t, img.Width-1, out.Width)
		assert.Equal(t, img.Height, out.Height)
		requireValidSeam(t, analysis.Seam, img.Width, img.Height)
	}
}
