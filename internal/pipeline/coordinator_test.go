package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seam-carver/internal/carve"
	"seam-carver/internal/timing"
)

type failingSink struct{}

var errDiskFull = errors.New("disk full")

func (failingSink) Name() string                   { return "failing" }
func (failingSink) Save(*carve.Image, string) error { return errDiskFull }

func newTestCoordinator(t *testing.T) (*Coordinator, *timing.Tracker) {
	t.Helper()
	tracker := timing.NewTracker()
	resizer := carve.NewResizer(carve.Options{}, nil)
	return NewCoordinator(NewFileSource(nil), NewFileSink(nil, 0), resizer, nil, tracker), tracker
}

func writeInput(t *testing.T, dir string, width, height int) string {
	t.Helper()
	path := filepath.Join(dir, "in.png")
	require.NoError(t, NewFileSink(nil, 0).Save(testImage(t, width, height), path))
	return path
}

func TestCoordinatorRun(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, 12, 6)
	out := filepath.Join(dir, "out.png")
	c, tracker := newTestCoordinator(t)

	result, err := c.Run(context.Background(), Request{
		Input:      in,
		Output:     out,
		Dimensions: carve.Relative{DX: -4},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Report.Iterations())
	assert.Equal(t, 4, result.Stats.Count)
	assert.Contains(t, result.Timings, "resize")
	assert.Equal(t, []string{"load", "resize", "save"}, tracker.Operations())

	saved, err := NewFileSource(nil).Load(out)
	require.NoError(t, err)
	assert.Equal(t, 8, saved.Width)
	assert.Equal(t, 6, saved.Height)
}

func TestCoordinatorRejectsGrowthWithoutWriting(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, 5, 5)
	out := filepath.Join(dir, "out.png")
	c, _ := newTestCoordinator(t)

	_, err := c.Run(context.Background(), Request{
		Input:      in,
		Output:     out,
		Dimensions: carve.Absolute{Width: 6, Height: 5},
	})
	assert.ErrorIs(t, err, carve.ErrGrowth)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCoordinatorMissingInput(t *testing.T) {
	c, _ := newTestCoordinator(t)
	_, err := c.Run(context.Background(), Request{
		Input:      filepath.Join(t.TempDir(), "nope.png"),
		Output:     "unused.png",
		Dimensions: carve.Relative{DX: -1},
	})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestCoordinatorSinkFailure(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, 6, 3)
	c := NewCoordinator(NewFileSource(nil), failingSink{}, carve.NewResizer(carve.Options{}, nil), nil, nil)

	result, err := c.Run(context.Background(), Request{
		Input:      in,
		Output:     filepath.Join(dir, "out.png"),
		Dimensions: carve.Relative{DX: -1},
	})
	assert.ErrorIs(t, err, errDiskFull)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Report.Iterations())
}

func TestCoordinatorDiagnostics(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, 8, 5)
	diag := filepath.Join(dir, "diag")
	c, _ := newTestCoordinator(t)

	for _, heat := range []bool{false, true} {
		require.NoError(t, c.Diagnose(in, diag, DiagnosticsOptions{Heatmap: heat}))
		for _, name := range []string{"gradient.png", "cost.png", "seam.png"} {
			img, err := NewFileSource(nil).Load(filepath.Join(diag, name))
			require.NoError(t, err, name)
			assert.Equal(t, 8, img.Width)
			assert.Equal(t, 5, img.Height)
		}
	}
}
