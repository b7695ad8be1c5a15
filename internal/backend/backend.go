// Package backend selects the image codecs and edge detector named by the
// backend config key.
package backend

import (
	"errors"
	"fmt"

	"seam-carver/internal/carve"
	"seam-carver/internal/config"
	"seam-carver/internal/logger"
	"seam-carver/internal/pipeline"
)

// ErrUnavailable is returned for a backend not compiled into this binary.
var ErrUnavailable = errors.New("backend not available in this build")

type Backend struct {
	Source   pipeline.ImageSource
	Sink     pipeline.ImageSink
	Detector carve.EdgeDetector
}

func New(name string, log logger.Logger, jpegQuality int) (*Backend, error) {
	switch name {
	case "", config.BackendGo:
		return &Backend{
			Source:   pipeline.NewFileSource(log),
			Sink:     pipeline.NewFileSink(log, jpegQuality),
			Detector: carve.Sobel{},
		}, nil
	case config.BackendOpenCV:
		return openCV(log, jpegQuality)
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}
