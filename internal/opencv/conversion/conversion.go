//go:build opencv

// Package conversion moves pixel data between carve buffers and OpenCV Mats.
package conversion

import (
	"fmt"

	"seam-carver/internal/carve"
	"seam-carver/internal/grid"
	"seam-carver/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// ImageToMat returns a BGR Mat holding a copy of img.
func ImageToMat(img *carve.Image) (*safe.Mat, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("image validation failed: %w", err)
	}

	rgb, err := safe.NewMatFromBytes(img.Height, img.Width, gocv.MatTypeCV8UC3, img.Pix, "rgb input")
	if err != nil {
		return nil, fmt.Errorf("Mat creation failed: %w", err)
	}
	defer rgb.Close()

	bgr, err := safe.NewMat(img.Height, img.Width, gocv.MatTypeCV8UC3, "bgr input")
	if err != nil {
		return nil, fmt.Errorf("destination Mat creation failed: %w", err)
	}

	gocv.CvtColor(rgb.GetMat(), bgr.Ptr(), gocv.ColorRGBToBGR)
	return bgr, nil
}

// MatToImage converts a 1- or 3-channel 8-bit Mat into an RGB image.
func MatToImage(mat *safe.Mat) (*carve.Image, error) {
	if err := safe.ValidateMatForOperation(mat, "Mat to image"); err != nil {
		return nil, err
	}

	var code gocv.ColorConversionCode
	switch mat.Type() {
	case gocv.MatTypeCV8UC1:
		code = gocv.ColorGrayToRGB
	case gocv.MatTypeCV8UC3:
		code = gocv.ColorBGRToRGB
	default:
		return nil, fmt.Errorf("unsupported Mat type %d", int(mat.Type()))
	}

	rgb, err := safe.NewMat(mat.Rows(), mat.Cols(), gocv.MatTypeCV8UC3, "rgb output")
	if err != nil {
		return nil, err
	}
	defer rgb.Close()

	gocv.CvtColor(mat.GetMat(), rgb.Ptr(), code)

	pix, err := rgb.Bytes()
	if err != nil {
		return nil, err
	}
	return carve.NewImageFromPix(pix, rgb.Cols(), rgb.Rows())
}

// PlaneToMat wraps a copy of a single colour plane as a CV_8UC1 Mat.
func PlaneToMat(plane *grid.Grid[uint8]) (*safe.Mat, error) {
	if plane == nil {
		return nil, fmt.Errorf("plane is nil")
	}
	return safe.NewMatFromBytes(plane.Height(), plane.Width(), gocv.MatTypeCV8UC1, plane.Data(), "plane")
}
