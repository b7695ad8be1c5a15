//go:build opencv

// Package opencv provides a gocv backend for the carving pipeline: an edge
// detector and file codecs.
package opencv

import (
	"fmt"

	"seam-carver/internal/carve"
	"seam-carver/internal/grid"
	"seam-carver/internal/opencv/conversion"
	"seam-carver/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// SobelDetector computes the same 3x3 Sobel magnitude as carve.Sobel using
// OpenCV's derivative filter with replicated borders.
type SobelDetector struct{}

var _ carve.EdgeDetector = SobelDetector{}

func (SobelDetector) Name() string { return "opencv-sobel" }

func (SobelDetector) Magnitude(plane *grid.Grid[uint8]) (*grid.Grid[uint16], error) {
	src, err := conversion.PlaneToMat(plane)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	rows, cols := src.Rows(), src.Cols()

	gx, err := safe.NewMat(rows, cols, gocv.MatTypeCV16S, "sobel x")
	if err != nil {
		return nil, err
	}
	defer gx.Close()

	gy, err := safe.NewMat(rows, cols, gocv.MatTypeCV16S, "sobel y")
	if err != nil {
		return nil, err
	}
	defer gy.Close()

	gocv.Sobel(src.GetMat(), gx.Ptr(), gocv.MatTypeCV16S, 1, 0, 3, 1, 0, gocv.BorderReplicate)
	gocv.Sobel(src.GetMat(), gy.Ptr(), gocv.MatTypeCV16S, 0, 1, 3, 1, 0, gocv.BorderReplicate)

	if err := safe.ValidateMatType(gx, gocv.MatTypeCV16S, "sobel x"); err != nil {
		return nil, err
	}
	if err := safe.ValidateMatType(gy, gocv.MatTypeCV16S, "sobel y"); err != nil {
		return nil, err
	}

	out, err := grid.New[uint16](cols, rows)
	if err != nil {
		return nil, err
	}
	for y := 0; y < rows; y++ {
		row := out.Row(y)
		for x := 0; x < cols; x++ {
			dx, err := gx.GetShortAt(y, x)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", carve.ErrOutOfBounds, err)
			}
			dy, err := gy.GetShortAt(y, x)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", carve.ErrOutOfBounds, err)
			}
			row[x] = carve.MagnitudeOf(int(dx), int(dy))
		}
	}
	return out, nil
}
