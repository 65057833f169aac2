package metric

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a distribution of scores.
type Summary struct {
	N        int
	Mean     float64
	StdDev   float64
	Variance float64
	StdErr   float64
	Min      float64
	Max      float64
}

// Summarize computes descriptive statistics over values. weights may be nil;
// otherwise it must have the same length as values. Spread statistics are 0
// when fewer than two values are given.
func Summarize(values, weights []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	s := Summary{
		N:   len(values),
		Min: floats.Min(values),
		Max: floats.Max(values),
	}
	if s.N < 2 {
		s.Mean = values[0]
		return s
	}

	s.Mean, s.StdDev = stat.MeanStdDev(values, weights)
	s.Variance = stat.Variance(values, weights)
	s.StdErr = stat.StdErr(s.StdDev, float64(s.N))
	if math.IsNaN(s.StdDev) {
		s.StdDev, s.Variance, s.StdErr = 0, 0, 0
	}
	return s
}

// WeightedMean returns the mean of values under weights, or the plain mean
// when weights is nil.
func WeightedMean(values, weights []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if weights != nil && floats.Sum(weights) == 0 {
		return 0
	}
	return stat.Mean(values, weights)
}
