package carve

import (
	"context"
	"fmt"

	"seam-carver/internal/grid"
	"seam-carver/internal/logger"
)

// Dimensions describes a resize request.
type Dimensions interface {
	target(width, height int) (int, int)
}

// Relative changes the current size by DX, DY pixels.
type Relative struct {
	DX int
	DY int
}

func (r Relative) target(width, height int) (int, int) {
	return width + r.DX, height + r.DY
}

// Absolute requests an exact size.
type Absolute struct {
	Width  int
	Height int
}

func (a Absolute) target(int, int) (int, int) {
	return a.Width, a.Height
}

// TargetWidth requests an exact width at the current height.
type TargetWidth int

func (t TargetWidth) target(_, height int) (int, int) {
	return int(t), height
}

type Options struct {
	Detector EdgeDetector
	Mode     TraceMode
	// Parallel computes the three channel gradients concurrently.
	Parallel bool
	// Progress, if set, is called after every removed seam.
	Progress func(done, total int)
}

// Analysis is everything computed for one seam selection.
type Analysis struct {
	Gradient *grid.Grid[uint16]
	Cost     *grid.Grid[uint64]
	Seam     Seam
	// SeamCost is the row-0 minimum of the cost table.
	SeamCost uint64
}

// Report summarises a completed or interrupted ReduceWidth call.
type Report struct {
	StartWidth int
	EndWidth   int
	Height     int
	SeamCosts  []uint64
}

func (r Report) Iterations() int { return len(r.SeamCosts) }

// Resizer runs the gradient, cost, trace and remove loop.
type Resizer struct {
	opts   Options
	logger logger.Logger
}

func NewResizer(opts Options, log logger.Logger) *Resizer {
	if opts.Detector == nil {
		opts.Detector = Sobel{}
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Resizer{opts: opts, logger: log}
}

// Analyze computes the gradient field, cost table and seam for img.
func (r *Resizer) Analyze(img *Image) (*Analysis, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if img.Width < 2 {
		return nil, fmt.Errorf("analyze: %w (width %d)", ErrTooNarrow, img.Width)
	}

	gradient, err := GradientField(img, r.opts.Detector, r.opts.Parallel)
	if err != nil {
		return nil, err
	}
	cost, err := CostTable(gradient)
	if err != nil {
		return nil, err
	}
	seam, err := TraceSeam(gradient, cost, r.opts.Mode)
	if err != nil {
		return nil, err
	}
	_, seamCost := Start(cost)

	return &Analysis{Gradient: gradient, Cost: cost, Seam: seam, SeamCost: seamCost}, nil
}

// Step removes exactly one seam.
func (r *Resizer) Step(img *Image) (*Image, *Analysis, error) {
	analysis, err := r.Analyze(img)
	if err != nil {
		return nil, nil, err
	}
	out, err := RemoveSeam(img, analysis.Seam)
	if err != nil {
		return nil, nil, err
	}
	return out, analysis, nil
}

// Resize shrinks img to dims. Only width reductions are accepted.
func (r *Resizer) Resize(ctx context.Context, img *Image, dims Dimensions) (*Image, Report, error) {
	if err := img.Validate(); err != nil {
		return nil, Report{}, err
	}
	if dims == nil {
		return nil, Report{}, fmt.Errorf("%w: no target dimensions", ErrInput)
	}
	width, height := dims.target(img.Width, img.Height)
	if height != img.Height {
		return nil, Report{}, fmt.Errorf("%w: height %d -> %d", ErrVertical, img.Height, height)
	}
	if width > img.Width {
		return nil, Report{}, fmt.Errorf("%w: width %d -> %d", ErrGrowth, img.Width, width)
	}
	return r.ReduceWidth(ctx, img, img.Width-width)
}

// ReduceWidth removes n seams from img. The input is never modified. If an
// iteration fails or ctx is cancelled, the last complete image is returned
// together with the error.
func (r *Resizer) ReduceWidth(ctx context.Context, img *Image, n int) (*Image, Report, error) {
	if err := img.Validate(); err != nil {
		return nil, Report{}, err
	}
	if n < 0 {
		return nil, Report{}, fmt.Errorf("%w: reduce by %d", ErrGrowth, n)
	}
	report := Report{StartWidth: img.Width, EndWidth: img.Width, Height: img.Height}
	if n == 0 {
		return img.Clone(), report, nil
	}
	if img.Width-n < 1 {
		return nil, Report{}, fmt.Errorf("%w: cannot remove %d columns from width %d", ErrTooNarrow, n, img.Width)
	}

	r.logger.Debug("Resizer", "resize started", map[string]interface{}{
		"width":    img.Width,
		"height":   img.Height,
		"reduce":   n,
		"detector": r.opts.Detector.Name(),
		"trace":    r.opts.Mode.String(),
	})

	current := img
	report.SeamCosts = make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			r.logger.Warning("Resizer", "resize cancelled", map[string]interface{}{
				"completed": i,
				"requested": n,
			})
			return detach(img, current), report, ctx.Err()
		default:
		}

		next, analysis, err := r.Step(current)
		if err != nil {
			r.logger.Error("Resizer", err, map[string]interface{}{
				"iteration": i,
				"width":     current.Width,
			})
			return detach(img, current), report, fmt.Errorf("seam %d of %d: %w", i+1, n, err)
		}

		current = next
		report.EndWidth = current.Width
		report.SeamCosts = append(report.SeamCosts, analysis.SeamCost)

		if r.opts.Progress != nil {
			r.opts.Progress(i+1, n)
		}
	}

	r.logger.Debug("Resizer", "resize completed", map[string]interface{}{
		"width":  current.Width,
		"height": current.Height,
		"seams":  report.Iterations(),
	})
	return current, report, nil
}

// detach copies current when it is still the caller's image, so a partial
// result never aliases the input.
func detach(img, current *Image) *Image {
	if current == img {
		return img.Clone()
	}
	return current
}
