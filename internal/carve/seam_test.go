package carve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextColumnTieBreaks(t *testing.T) {
	tests := []struct {
		name string
		row  []uint16
		col  int
		want int
	}{
		{"all equal stays", []uint16{5, 5, 5}, 1, 1},
		{"left and right tie goes right", []uint16{4, 5, 4}, 1, 2},
		{"strict left", []uint16{3, 5, 4}, 1, 0},
		{"strict right", []uint16{5, 5, 4}, 1, 2},
		{"left below middle and right", []uint16{4, 5, 5}, 1, 0},
		{"left ties middle stays", []uint16{4, 4, 5}, 1, 1},
		{"right ties middle stays", []uint16{5, 4, 4}, 1, 1},
		{"left edge tie stays", []uint16{3, 3, 9}, 0, 0},
		{"left edge moves right", []uint16{3, 2, 9}, 0, 1},
		{"right edge tie stays", []uint16{9, 3, 3}, 2, 2},
		{"right edge moves left", []uint16{9, 2, 3}, 2, 1},
		{"two columns", []uint16{1, 0}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextColumn(tt.row, tt.col))
		})
	}
}

func TestStartPrefersLowestIndex(t *testing.T) {
	cost := gridOf(t, [][]uint64{{7, 3, 9, 3}})
	col, v := Start(cost)
	assert.Equal(t, 1, col)
	assert.Equal(t, uint64(3), v)
}

func TestTraceSeamFollowsGradient(t *testing.T) {
	gradient := gridOf(t, [][]uint16{
		{1, 2, 3},
		{4, 1, 6},
		{7, 8, 0},
	})
	cost, err := CostTable(gradient)
	require.NoError(t, err)

	for _, mode := range []TraceMode{TraceGradient, TraceCost} {
		seam, err := TraceSeam(gradient, cost, mode)
		require.NoError(t, err)
		assert.Equal(t, Seam{0, 1, 2}, seam, mode.String())
	}
}

func TestTraceModesCanDiverge(t *testing.T) {
	// Greedy on the gradient takes the cheap cell in row 1 and then pays for row 2.
	gradient := gridOf(t, [][]uint16{
		{5, 0, 5},
		{0, 1, 2},
		{9, 9, 0},
	})
	cost, err := CostTable(gradient)
	require.NoError(t, err)
	col, minimum := Start(cost)
	require.Equal(t, 1, col)

	greedy, err := TraceSeam(gradient, cost, TraceGradient)
	require.NoError(t, err)
	assert.Equal(t, Seam{1, 0, 0}, greedy)

	exact, err := TraceSeam(gradient, cost, TraceCost)
	require.NoError(t, err)
	assert.Equal(t, Seam{1, 1, 2}, exact)

	exactCost, err := exact.Cost(gradient)
	require.NoError(t, err)
	assert.Equal(t, minimum, exactCost)

	greedyCost, err := greedy.Cost(gradient)
	require.NoError(t, err)
	assert.Greater(t, greedyCost, minimum)
}

func TestTraceSeamProperties(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		img := randomImage(t, 3+int(seed%9), 2+int(seed%7), seed)
		field, err := GradientField(img, Sobel{}, false)
		require.NoError(t, err)
		cost, err := CostTable(field)
		require.NoError(t, err)
		_, minimum := Start(cost)

		for _, mode := range []TraceMode{TraceGradient, TraceCost} {
			seam, err := TraceSeam(field, cost, mode)
			require.NoError(t, err)
			requireValidSeam(t, seam, img.Width, img.Height)
			require.NoError(t, seam.Validate(img.Width, img.Height))

			total, err := seam.Cost(field)
			require.NoError(t, err)
			if mode == TraceCost {
				assert.Equal(t, minimum, total, "seed %d", seed)
			} else {
				assert.GreaterOrEqual(t, total, minimum, "seed %d", seed)
			}
		}
	}
}

func TestTraceSeamRejectsBadInput(t *testing.T) {
	narrow := gridOf(t, [][]uint16{{1}, {1}})
	narrowCost := gridOf(t, [][]uint64{{1}, {1}})
	_, err := TraceSeam(narrow, narrowCost, TraceGradient)
	assert.ErrorIs(t, err, ErrTooNarrow)

	gradient := gridOf(t, [][]uint16{{1, 2}, {3, 4}})
	cost := gridOf(t, [][]uint64{{1, 2, 3}, {3, 4, 5}})
	_, err = TraceSeam(gradient, cost, TraceGradient)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.ErrorIs(t, err, ErrInvariant)

	_, err = TraceSeam(nil, cost, TraceCost)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestSeamValidate(t *testing.T) {
	assert.NoError(t, Seam{0, 1, 1}.Validate(3, 3))
	assert.ErrorIs(t, Seam{0, 1}.Validate(3, 3), ErrSeamOutOfBounds)
	assert.ErrorIs(t, Seam{0, 3, 2}.Validate(3, 3), ErrSeamOutOfBounds)
	assert.ErrorIs(t, Seam{0, -1, 0}.Validate(3, 3), ErrSeamOutOfBounds)
	assert.ErrorIs(t, Seam{0, 2, 2}.Validate(3, 3), ErrSeamOutOfBounds)
}

func TestParseTraceMode(t *testing.T) {
	m, err := ParseTraceMode("cost")
	require.NoError(t, err)
	assert.Equal(t, TraceCost, m)

	m, err = ParseTraceMode("")
	require.NoError(t, err)
	assert.Equal(t, TraceGradient, m)

	_, err = ParseTraceMode("forward-energy")
	assert.ErrorIs(t, err, ErrInput)
}
