package pipeline

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"seam-carver/internal/carve"
	"seam-carver/internal/diagnostics"
	"seam-carver/internal/logger"
)

// Request describes one load, resize and save run.
type Request struct {
	Input      string
	Output     string
	Dimensions carve.Dimensions
	// DiagnosticsDir, when set, receives gradient, cost and seam images of the
	// input before resizing.
	DiagnosticsDir string
	Diagnostics    DiagnosticsOptions
}

type DiagnosticsOptions struct {
	Heatmap bool
	Scale   diagnostics.Scale
}

type Result struct {
	Report  carve.Report
	Stats   SeamStats
	Timings map[string]time.Duration
}

// Coordinator wires an ImageSource, the resizer and an ImageSink together.
type Coordinator struct {
	source  ImageSource
	sink    ImageSink
	resizer *carve.Resizer
	logger  logger.Logger
	timing  TimingTracker
}

func NewCoordinator(source ImageSource, sink ImageSink, resizer *carve.Resizer, log logger.Logger, tracker TimingTracker) *Coordinator {
	if log == nil {
		log = logger.Nop{}
	}
	return &Coordinator{
		source:  source,
		sink:    sink,
		resizer: resizer,
		logger:  log,
		timing:  tracker,
	}
}

func (c *Coordinator) timed(operation string, fn func() error) (time.Duration, error) {
	if c.timing == nil {
		start := time.Now()
		err := fn()
		return time.Since(start), err
	}
	ctx := c.timing.StartTiming(operation)
	err := fn()
	return c.timing.EndTiming(ctx), err
}

// Run loads req.Input, shrinks it and writes req.Output. Nothing is written
// if the resize fails or is cancelled.
func (c *Coordinator) Run(ctx context.Context, req Request) (*Result, error) {
	result := &Result{Timings: make(map[string]time.Duration)}

	var img *carve.Image
	d, err := c.timed("load", func() error {
		var err error
		img, err = c.source.Load(req.Input)
		return err
	})
	result.Timings["load"] = d
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", req.Input, err)
	}

	if req.DiagnosticsDir != "" {
		if err := c.writeDiagnostics(img, req.DiagnosticsDir, req.Diagnostics); err != nil {
			return nil, err
		}
	}

	var out *carve.Image
	d, err = c.timed("resize", func() error {
		var err error
		out, result.Report, err = c.resizer.Resize(ctx, img, req.Dimensions)
		return err
	})
	result.Timings["resize"] = d
	if err != nil {
		c.logger.Error("Coordinator", err, map[string]interface{}{
			"input":     req.Input,
			"completed": result.Report.Iterations(),
		})
		return result, fmt.Errorf("resize %s: %w", req.Input, err)
	}
	result.Stats = ComputeSeamStats(result.Report.SeamCosts)

	d, err = c.timed("save", func() error {
		return c.sink.Save(out, req.Output)
	})
	result.Timings["save"] = d
	if err != nil {
		return result, fmt.Errorf("save %s: %w", req.Output, err)
	}

	fields := result.Stats.Fields()
	fields["input"] = req.Input
	fields["output"] = req.Output
	fields["size"] = fmt.Sprintf("%dx%d -> %dx%d", result.Report.StartWidth, result.Report.Height,
		result.Report.EndWidth, result.Report.Height)
	for op, dur := range result.Timings {
		fields[op+"_ms"] = dur.Milliseconds()
	}
	c.logger.Info("Coordinator", "resize completed", fields)

	return result, nil
}

// Diagnose writes the diagnostic images of input into dir without resizing.
func (c *Coordinator) Diagnose(input, dir string, opts DiagnosticsOptions) error {
	img, err := c.source.Load(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	return c.writeDiagnostics(img, dir, opts)
}

func (c *Coordinator) writeDiagnostics(img *carve.Image, dir string, opts DiagnosticsOptions) error {
	analysis, err := c.resizer.Analyze(img)
	if err != nil {
		return fmt.Errorf("diagnostics: %w", err)
	}

	var gradient, cost image.Image
	if opts.Heatmap {
		gradient = diagnostics.Heatmap(analysis.Gradient)
		cost = diagnostics.Heatmap(analysis.Cost)
	} else {
		gradient = diagnostics.Grayscale(analysis.Gradient, opts.Scale)
		cost = diagnostics.Grayscale(analysis.Cost, diagnostics.ScaleNormalize)
	}
	overlay, err := diagnostics.SeamOverlay(img, analysis.Seam, diagnostics.SeamColor)
	if err != nil {
		return fmt.Errorf("diagnostics: %w", err)
	}

	outputs := []struct {
		name string
		img  image.Image
	}{
		{"gradient.png", gradient},
		{"cost.png", cost},
		{"seam.png", overlay},
	}
	for _, o := range outputs {
		rgb, err := carve.FromStdImage(o.img)
		if err != nil {
			return fmt.Errorf("diagnostics %s: %w", o.name, err)
		}
		if err := c.sink.Save(rgb, filepath.Join(dir, o.name)); err != nil {
			return fmt.Errorf("diagnostics %s: %w", o.name, err)
		}
	}

	c.logger.Debug("Coordinator", "diagnostics written", map[string]interface{}{
		"dir":       dir,
		"seam_cost": analysis.SeamCost,
		"seam_top":  analysis.Seam[0],
	})
	return nil
}
