package carve

import (
	"errors"
	"fmt"
)

// Input errors are raised before any state is touched.
var (
	ErrInput     = errors.New("invalid input")
	ErrTooNarrow = fmt.Errorf("%w: image must be at least 2 pixels wide", ErrInput)
	ErrEmpty     = fmt.Errorf("%w: image has no pixels", ErrInput)
	ErrGrowth    = fmt.Errorf("%w: only shrinking is supported", ErrInput)
	ErrVertical  = fmt.Errorf("%w: only horizontal resizing is supported", ErrInput)
)

// Invariant errors mean a buffer or seam is inconsistent with its dimensions.
var (
	ErrInvariant         = errors.New("invariant violation")
	ErrBufferSize        = fmt.Errorf("%w: buffer length does not match dimensions", ErrInvariant)
	ErrOutOfBounds       = fmt.Errorf("%w: coordinates outside image", ErrInvariant)
	ErrSeamOutOfBounds   = fmt.Errorf("%w: seam outside image bounds", ErrInvariant)
	ErrDimensionMismatch = fmt.Errorf("%w: grid dimensions differ", ErrInvariant)
)
