// Package grid provides a dense row-major 2D buffer with bounds-checked access.
package grid

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned for any access outside the grid.
var ErrOutOfBounds = errors.New("grid: coordinates out of bounds")

// Number is the set of element types the carving pipeline stores in grids.
type Number interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Grid is a width x height buffer stored row by row.
type Grid[T Number] struct {
	width  int
	height int
	data   []T
}

func New[T Number](width, height int) (*Grid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid: invalid dimensions %dx%d", width, height)
	}
	return &Grid[T]{
		width:  width,
		height: height,
		data:   make([]T, width*height),
	}, nil
}

// FromSlice wraps data without copying. len(data) must equal width*height.
func FromSlice[T Number](width, height int, data []T) (*Grid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid: invalid dimensions %dx%d", width, height)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("grid: buffer length %d does not match %dx%d", len(data), width, height)
	}
	return &Grid[T]{width: width, height: height, data: data}, nil
}

func (g *Grid[T]) Width() int  { return g.width }
func (g *Grid[T]) Height() int { return g.height }

func (g *Grid[T]) offset(row, col int) (int, error) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return 0, fmt.Errorf("%w: (row %d, col %d) for size %dx%d",
			ErrOutOfBounds, row, col, g.width, g.height)
	}
	return row*g.width + col, nil
}

func (g *Grid[T]) Get(row, col int) (T, error) {
	i, err := g.offset(row, col)
	if err != nil {
		var zero T
		return zero, err
	}
	return g.data[i], nil
}

func (g *Grid[T]) Set(row, col int, value T) error {
	i, err := g.offset(row, col)
	if err != nil {
		return err
	}
	g.data[i] = value
	return nil
}

// Row returns the backing slice for one row. Writes go straight to the grid.
// Panics if row is outside the grid, like any slice index.
func (g *Grid[T]) Row(row int) []T {
	start := row * g.width
	return g.data[start : start+g.width : start+g.width]
}

// Data exposes the full backing buffer in row-major order.
func (g *Grid[T]) Data() []T {
	return g.data
}

func (g *Grid[T]) Clone() *Grid[T] {
	data := make([]T, len(g.data))
	copy(data, g.data)
	return &Grid[T]{width: g.width, height: g.height, data: data}
}

// Equal reports whether both grids have the same dimensions and contents.
func (g *Grid[T]) Equal(other *Grid[T]) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i, v := range g.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// Fill sets every cell to value.
func (g *Grid[T]) Fill(value T) {
	for i := range g.data {
		g.data[i] = value
	}
}
