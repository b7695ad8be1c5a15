package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSeamStats(t *testing.T) {
	s := ComputeSeamStats([]uint64{200, 400, 600})
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1200.0, s.Total)
	assert.Equal(t, 400.0, s.Mean)
	assert.InDelta(t, 200.0, s.StdDev, 1e-9)
	assert.Equal(t, 200.0, s.Min)
	assert.Equal(t, 600.0, s.Max)
}

func TestComputeSeamStatsSingleAndEmpty(t *testing.T) {
	s := ComputeSeamStats([]uint64{300})
	assert.Equal(t, 300.0, s.Mean)
	assert.Zero(t, s.StdDev)
	assert.False(t, math.IsNaN(s.StdDev))

	assert.Equal(t, SeamStats{}, ComputeSeamStats(nil))
}
