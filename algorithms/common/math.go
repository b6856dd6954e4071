package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Statistical helpers shared across the detection heuristics, backed by gonum.

// Mean calculates the arithmetic mean of a slice
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Median returns the middle value of the data. The session-median gap and
// word-duration baselines depend on this being robust to a single outlier.
func Median(data []float64) float64 {
	return Percentile(data, 0.5)
}

// Percentile calculates the p-th percentile (p between 0 and 1)
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 || p < 0 || p > 1 {
		return 0.0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}
	return math.Sqrt(sumSquares / float64(len(data)))
}

// MaxValue returns the maximum of the data, or 0 for an empty slice
func MaxValue(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	maxVal := data[0]
	for _, v := range data[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}
