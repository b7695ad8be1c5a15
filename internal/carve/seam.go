package carve

import (
	"fmt"

	"seam-carver/internal/grid"
)

// Seam holds one column index per row, top to bottom.
type Seam []int

// TraceMode selects which table guides the walk from row to row.
type TraceMode int

const (
	// TraceGradient steps toward the cheapest gradient value in the next row.
	TraceGradient TraceMode = iota
	// TraceCost steps toward the cheapest cost-table entry in the next row,
	// which always reproduces the row-0 minimum.
	TraceCost
)

func (m TraceMode) String() string {
	switch m {
	case TraceGradient:
		return "gradient"
	case TraceCost:
		return "cost"
	default:
		return fmt.Sprintf("TraceMode(%d)", int(m))
	}
}

// ParseTraceMode accepts the names returned by String.
func ParseTraceMode(s string) (TraceMode, error) {
	switch s {
	case "", "gradient":
		return TraceGradient, nil
	case "cost":
		return TraceCost, nil
	default:
		return 0, fmt.Errorf("%w: unknown trace mode %q", ErrInput, s)
	}
}

// Start returns the column of the smallest row-0 cost; the lowest index wins ties.
func Start(cost *grid.Grid[uint64]) (int, uint64) {
	top := cost.Row(0)
	best := 0
	for x := 1; x < len(top); x++ {
		if top[x] < top[best] {
			best = x
		}
	}
	return best, top[best]
}

// TraceSeam walks from the cheapest row-0 column to the last row. At each step
// the candidates below are compared with preference stay > right > left.
func TraceSeam(gradient *grid.Grid[uint16], cost *grid.Grid[uint64], mode TraceMode) (Seam, error) {
	if gradient == nil || cost == nil {
		return nil, fmt.Errorf("trace: %w", ErrEmpty)
	}
	if gradient.Width() < 2 || cost.Width() < 2 {
		return nil, fmt.Errorf("trace: %w", ErrTooNarrow)
	}
	if gradient.Width() != cost.Width() || gradient.Height() != cost.Height() {
		return nil, fmt.Errorf("trace: %w: gradient %dx%d, cost %dx%d", ErrDimensionMismatch,
			gradient.Width(), gradient.Height(), cost.Width(), cost.Height())
	}

	h := gradient.Height()
	seam := make(Seam, h)
	col, _ := Start(cost)
	seam[0] = col

	for y := 1; y < h; y++ {
		switch mode {
		case TraceCost:
			col = nextColumn(cost.Row(y), col)
		default:
			col = nextColumn(gradient.Row(y), col)
		}
		seam[y] = col
	}
	return seam, nil
}

func nextColumn[T uint16 | uint64](row []T, col int) int {
	last := len(row) - 1
	switch col {
	case 0:
		if row[1] < row[0] {
			return 1
		}
		return 0
	case last:
		if row[last-1] < row[last] {
			return last - 1
		}
		return last
	}

	left, mid, right := row[col-1], row[col], row[col+1]
	if left < mid && left < right {
		return col - 1
	}
	if right == min(left, mid, right) && right < mid {
		return col + 1
	}
	return col
}

// Cost sums gradient values along the seam.
func (s Seam) Cost(gradient *grid.Grid[uint16]) (uint64, error) {
	if len(s) != gradient.Height() {
		return 0, fmt.Errorf("%w: seam has %d rows, field has %d", ErrSeamOutOfBounds, len(s), gradient.Height())
	}
	var total uint64
	for y, x := range s {
		v, err := gradient.Get(y, x)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrSeamOutOfBounds, err)
		}
		total += uint64(v)
	}
	return total, nil
}

// Validate checks the seam against a width x height image.
func (s Seam) Validate(width, height int) error {
	if len(s) != height {
		return fmt.Errorf("%w: seam has %d rows, image has %d", ErrSeamOutOfBounds, len(s), height)
	}
	for y, x := range s {
		if x < 0 || x >= width {
			return fmt.Errorf("%w: row %d column %d not in [0, %d)", ErrSeamOutOfBounds, y, x, width)
		}
		if y > 0 && (x-s[y-1] > 1 || s[y-1]-x > 1) {
			return fmt.Errorf("%w: row %d jumps from column %d to %d", ErrSeamOutOfBounds, y, s[y-1], x)
		}
	}
	return nil
}
