// Package viewer shows an image in a fyne window and carves seams out of it
// as the window is narrowed.
package viewer

import (
	"fmt"
	"sync"
	"sync/atomic"

	"seam-carver/internal/carve"
	"seam-carver/internal/logger"
)

// Carver owns the image being narrowed. It is safe for concurrent use; the
// seam loop itself runs on the caller's goroutine.
type Carver struct {
	mu      sync.Mutex
	current *carve.Image
	resizer *carve.Resizer
	logger  logger.Logger
	removed int

	width  atomic.Int64
	height int
}

func NewCarver(img *carve.Image, resizer *carve.Resizer, log logger.Logger) (*Carver, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if resizer == nil {
		return nil, fmt.Errorf("resizer is nil")
	}
	if log == nil {
		log = logger.Nop{}
	}
	c := &Carver{current: img.Clone(), resizer: resizer, logger: log, height: img.Height}
	c.width.Store(int64(img.Width))
	return c, nil
}

// Width reports the current width without waiting for a running ShrinkTo.
func (c *Carver) Width() int { return int(c.width.Load()) }

func (c *Carver) Height() int { return c.height }

// Image returns the current image. Callers must not modify it.
func (c *Carver) Image() *carve.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Removed is the total number of seams carved so far.
func (c *Carver) Removed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removed
}

// ShrinkTo removes seams one at a time until the image is at most width
// pixels wide. Widths below one column are clamped; growing is a no-op. It
// returns the resulting image and how many seams this call removed.
func (c *Carver) ShrinkTo(width int) (*carve.Image, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	width = max(width, 1)
	removed := 0
	for c.current.Width > width {
		next, analysis, err := c.resizer.Step(c.current)
		if err != nil {
			c.logger.Error("Viewer", err, map[string]interface{}{
				"width":  c.current.Width,
				"target": width,
			})
			return c.current, removed, err
		}
		c.current = next
		c.width.Store(int64(next.Width))
		c.removed++
		removed++

		c.logger.Debug("Viewer", "seam removed", map[string]interface{}{
			"width":     next.Width,
			"seam_cost": analysis.SeamCost,
		})
	}
	return c.current, removed, nil
}
