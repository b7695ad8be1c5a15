package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"seam-carver/internal/backend"
	"seam-carver/internal/carve"
	"seam-carver/internal/config"
	"seam-carver/internal/logger"
	"seam-carver/internal/pipeline"
	"seam-carver/internal/shutdown"
	"seam-carver/internal/timing"
)

// app holds what every subcommand needs once flags and config are resolved.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	logOut   io.Writer
	shutdown *shutdown.Manager
	timing   *timing.Tracker
}

// newRootCommand returns the command tree and the app it populates. The
// caller must call app.close once Execute returns, whether or not it failed.
func newRootCommand() (*cobra.Command, *app) {
	a := &app{logOut: os.Stderr}
	var configPath string

	root := &cobra.Command{
		Use:          "seam-carver",
		Short:        "Content-aware image narrowing by seam carving",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Format, cfg.Log.Level, a.logOut)
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.log = log
			a.timing = timing.NewTracker()
			a.timing.SetEnabled(cfg.Timing)

			a.shutdown = shutdown.NewManager(cmd.Context(), log)
			a.shutdown.Register(shutdown.Func(a.logTimings))
			a.shutdown.Listen()
			cmd.SetContext(a.shutdown.Context())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.String("backend", config.BackendGo, "image backend: go or opencv (needs -tags opencv)")
	pf.String("trace", carve.TraceGradient.String(), "seam trace rule: gradient or cost")
	pf.Bool("parallel", false, "compute channel gradients concurrently")
	pf.Bool("timing", true, "record and log per-stage durations")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")

	root.AddCommand(newResizeCommand(a), newDiagnoseCommand(a))
	return root, a
}

// close runs the shutdown sequence. It is safe to call when the command
// failed before configuration was loaded.
func (a *app) close() {
	if a.shutdown != nil {
		a.shutdown.Shutdown()
	}
}

func (a *app) logTimings() {
	ops := a.timing.Operations()
	if len(ops) == 0 {
		return
	}
	totals := a.timing.Totals()
	fields := make(map[string]interface{}, len(ops))
	for _, op := range ops {
		fields[op] = totals[op].String()
	}
	a.log.Debug("CLI", "stage timings", fields)
}

// coordinator builds the backend-specific pipeline. progress may be nil.
func (a *app) coordinator(progress func(done, total int)) (*pipeline.Coordinator, error) {
	b, err := backend.New(a.cfg.Backend, a.log, a.cfg.Output.JPEGQuality)
	if err != nil {
		return nil, err
	}

	resizer := carve.NewResizer(carve.Options{
		Detector: b.Detector,
		Mode:     a.cfg.TraceMode(),
		Parallel: a.cfg.Parallel,
		Progress: progress,
	}, a.log)

	a.log.Debug("CLI", "pipeline configured", map[string]interface{}{
		"source":   b.Source.Name(),
		"sink":     b.Sink.Name(),
		"detector": b.Detector.Name(),
		"trace":    a.cfg.Trace,
		"parallel": a.cfg.Parallel,
	})
	return pipeline.NewCoordinator(b.Source, b.Sink, resizer, a.log, a.timing), nil
}

func (a *app) diagnosticsOptions() pipeline.DiagnosticsOptions {
	return pipeline.DiagnosticsOptions{
		Heatmap: a.cfg.Diagnostics.Heatmap,
		Scale:   a.cfg.Scale(),
	}
}

func addDiagnosticsFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("heatmap", false, "colour diagnostics as a heat map")
	cmd.Flags().String("scale", "half", "gradient grayscale scaling: half or normalize")
}

func exactlyOne(cmd *cobra.Command, names ...string) error {
	set := 0
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("exactly one of --%s or --%s is required", names[0], names[1])
	}
	return nil
}
