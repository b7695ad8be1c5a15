package pipeline

import (
	"context"
	"errors"
	"time"

	"seam-carver/internal/carve"
)

var (
	ErrDecode = errors.New("image decode failed")
	ErrEncode = errors.New("image encode failed")
)

// ImageSource produces a dense RGB image from a file path.
type ImageSource interface {
	Load(path string) (*carve.Image, error)
	Name() string
}

// ImageSink persists an RGB image to a file path. The format follows the
// path's extension.
type ImageSink interface {
	Save(img *carve.Image, path string) error
	Name() string
}

type TimingTracker interface {
	StartTiming(operation string) context.Context
	EndTiming(ctx context.Context) time.Duration
}
