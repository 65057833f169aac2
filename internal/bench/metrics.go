// Package bench sweeps evaluation parameters over a corpus to show how
// agreement responds to near-miss tolerance.
package bench

import (
	segeval "github.com/jamesainslie/go-segeval"
	"github.com/jamesainslie/go-segeval/metric"
)

// Config holds sweep parameters.
type Config struct {
	Metric          segeval.Metric
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default sweep configuration.
func DefaultConfig() Config {
	return Config{
		Metric:          segeval.MetricB,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds the results for one parameter value.
type Metrics struct {
	// Score is the configured metric under the evaluator's aggregation.
	Score metric.Score
	// Precision and Recall use the same pairing and aggregation as Score.
	Precision     float64
	Recall        float64
	F1            float64
	WeightedScore float64
}

// newMetrics combines a score with precision and recall.
func newMetrics(score metric.Score, precision, recall float64, cfg Config) Metrics {
	m := Metrics{
		Score:     score,
		Precision: precision,
		Recall:    recall,
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}
	return m
}
