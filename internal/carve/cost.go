package carve

import (
	"fmt"

	"seam-carver/internal/grid"
)

// CostTable accumulates minimum path costs from the bottom row upward.
// cost[row][col] is the cheapest sum of gradient values along any seam from
// (row, col) down to the last row.
func CostTable(gradient *grid.Grid[uint16]) (*grid.Grid[uint64], error) {
	if gradient == nil {
		return nil, fmt.Errorf("cost table: %w", ErrEmpty)
	}
	w, h := gradient.Width(), gradient.Height()
	if h < 1 {
		return nil, fmt.Errorf("cost table: %w", ErrEmpty)
	}
	if w < 2 {
		return nil, fmt.Errorf("cost table: %w (width %d)", ErrTooNarrow, w)
	}

	cost, err := grid.New[uint64](w, h)
	if err != nil {
		return nil, fmt.Errorf("cost table: %w", err)
	}

	last := cost.Row(h - 1)
	for x, g := range gradient.Row(h - 1) {
		last[x] = uint64(g)
	}

	for y := h - 2; y >= 0; y-- {
		g := gradient.Row(y)
		below := cost.Row(y + 1)
		dst := cost.Row(y)

		dst[0] = uint64(g[0]) + min(below[0], below[1])
		for x := 1; x < w-1; x++ {
			dst[x] = uint64(g[x]) + min(below[x-1], below[x], below[x+1])
		}
		dst[w-1] = uint64(g[w-1]) + min(below[w-1], below[w-2])
	}
	return cost, nil
}
