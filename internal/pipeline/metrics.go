package pipeline

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SeamStats summarises the cost of every seam removed in one resize.
type SeamStats struct {
	Count  int
	Total  float64
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func ComputeSeamStats(costs []uint64) SeamStats {
	if len(costs) == 0 {
		return SeamStats{}
	}

	values := make([]float64, len(costs))
	for i, c := range costs {
		values[i] = float64(c)
	}

	stats := SeamStats{
		Count: len(values),
		Total: floats.Sum(values),
		Min:   floats.Min(values),
		Max:   floats.Max(values),
	}
	if len(values) == 1 {
		stats.Mean = values[0]
		return stats
	}
	stats.Mean, stats.StdDev = stat.MeanStdDev(values, nil)
	return stats
}

func (s SeamStats) Fields() map[string]interface{} {
	return map[string]interface{}{
		"seams":     s.Count,
		"cost_mean": s.Mean,
		"cost_std":  s.StdDev,
		"cost_min":  s.Min,
		"cost_max":  s.Max,
	}
}
