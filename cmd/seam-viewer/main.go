// Command seam-viewer opens an image and carves it as the window is narrowed.
package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/pflag"

	"seam-carver/internal/backend"
	"seam-carver/internal/carve"
	"seam-carver/internal/config"
	"seam-carver/internal/logger"
	"seam-carver/internal/shutdown"
	"seam-carver/internal/viewer"
)

const AppID = "io.seam-carver.viewer"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "seam-viewer:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("seam-viewer", pflag.ContinueOnError)
	configPath := flags.String("config", "", "YAML config file")
	flags.String("backend", config.BackendGo, "image backend: go or opencv")
	flags.String("trace", carve.TraceGradient.String(), "seam trace rule: gradient or cost")
	flags.Bool("parallel", false, "compute channel gradients concurrently")
	flags.String("log-level", "info", "log level")
	flags.String("log-format", "console", "log format: console or json")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: seam-viewer [flags] IMAGE")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("expected one image path, got %d", flags.NArg())
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.Format, cfg.Log.Level, os.Stderr)
	if err != nil {
		return err
	}

	b, err := backend.New(cfg.Backend, log, cfg.Output.JPEGQuality)
	if err != nil {
		return err
	}

	img, err := b.Source.Load(flags.Arg(0))
	if err != nil {
		return err
	}

	resizer := carve.NewResizer(carve.Options{
		Detector: b.Detector,
		Mode:     cfg.TraceMode(),
		Parallel: cfg.Parallel,
	}, log)
	carver, err := viewer.NewCarver(img, resizer, log)
	if err != nil {
		return err
	}

	a := app.NewWithID(AppID)

	var stopped atomic.Bool
	a.Lifecycle().SetOnStopped(func() { stopped.Store(true) })

	sm := shutdown.NewManager(context.Background(), log)
	sm.SetTimeout(2 * time.Second)
	sm.Register(quitter(a, &stopped))
	sm.Listen()
	defer sm.Shutdown()

	w := a.NewWindow("Seam Viewer - " + flags.Arg(0))
	view := viewer.NewSeamView(carver, log)
	w.SetContent(view.Content())
	w.Resize(fyne.NewSize(float32(img.Width), float32(img.Height)+40))

	log.Info("Viewer", "window opened", map[string]interface{}{
		"path":   flags.Arg(0),
		"width":  img.Width,
		"height": img.Height,
	})
	w.ShowAndRun()
	return nil
}

// quitter closes the app on interrupt. Once the run loop has ended on its own
// there is nothing left to quit.
func quitter(a fyne.App, stopped *atomic.Bool) shutdown.Func {
	return func() {
		if !stopped.Load() {
			a.Quit()
		}
	}
}
