//go:build opencv

package backend

import (
	"seam-carver/internal/logger"
	"seam-carver/internal/opencv"
)

// OpenCVAvailable reports whether the binary was built with -tags opencv.
const OpenCVAvailable = true

func openCV(log logger.Logger, jpegQuality int) (*Backend, error) {
	return &Backend{
		Source:   opencv.NewSource(log),
		Sink:     opencv.NewSink(log, jpegQuality),
		Detector: opencv.SobelDetector{},
	}, nil
}
