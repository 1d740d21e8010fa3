package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics of one input.
type Summary struct {
	Label string
	// Episodes is the number of trial rows; 0 means nothing else is set.
	Episodes int
	Mean     float64
	Median   float64
	Std      float64 // population standard deviation
	Min      float64
	Max      float64
}

// Summarize computes statistics over all step counts of steps, flattened.
func Summarize(label string, steps [][]int) Summary {
	s := Summary{Label: label, Episodes: len(steps)}
	if s.Episodes == 0 {
		return s
	}
	vals := make([]float64, 0, len(steps)*len(steps[0]))
	for _, row := range steps {
		for _, v := range row {
			vals = append(vals, float64(v))
		}
	}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Median, s.Std, s.Min, s.Max = nan, nan, nan, nan, nan
		return s
	}
	mean, variance := stat.PopMeanVariance(vals, nil)
	s.Mean = mean
	s.Std = math.Sqrt(variance)
	s.Min = floats.Min(vals)
	s.Max = floats.Max(vals)
	sort.Float64s(vals)
	s.Median = quantile(vals, 0.5)
	return s
}

// quantile linearly interpolates between closest ranks of a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
