package main

import (
	"context"
	"sync/atomic"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"

	"seam-carver/internal/shutdown"
)

type quitCounter struct {
	fyne.App
	quits atomic.Int32
}

func (q *quitCounter) Quit() { q.quits.Add(1) }

func TestInterruptQuitsRunningApp(t *testing.T) {
	app := &quitCounter{}
	var stopped atomic.Bool

	sm := shutdown.NewManager(context.Background(), nil)
	sm.Register(quitter(app, &stopped))
	sm.Shutdown()

	assert.Equal(t, int32(1), app.quits.Load())
}

func TestShutdownAfterWindowClosedSkipsQuit(t *testing.T) {
	app := &quitCounter{}
	var stopped atomic.Bool
	stopped.Store(true)

	sm := shutdown.NewManager(context.Background(), nil)
	sm.Register(quitter(app, &stopped))
	sm.Shutdown()

	assert.Zero(t, app.quits.Load())
}

func TestRunRequiresOneImage(t *testing.T) {
	assert.Error(t, run(nil))
	assert.Error(t, run([]string{"a.png", "b.png"}))
}
