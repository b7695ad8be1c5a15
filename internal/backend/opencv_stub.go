//go:build !opencv

package backend

import (
	"fmt"

	"seam-carver/internal/config"
	"seam-carver/internal/logger"
)

const OpenCVAvailable = false

func openCV(logger.Logger, int) (*Backend, error) {
	return nil, fmt.Errorf("%w: %s (rebuild with -tags opencv)", ErrUnavailable, config.BackendOpenCV)
}
