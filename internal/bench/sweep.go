package bench

import (
	"context"
	"fmt"
	"slices"
	"sort"

	segeval "github.com/jamesainslie/go-segeval"
)

// SweepResult holds metrics for one near-miss value.
type SweepResult struct {
	NearMiss int
	Metrics  Metrics
}

// NearMissRange generates near-miss values from min to max inclusive with
// the given step. It returns nil for a non-positive step, a negative min or
// min > max.
func NearMissRange(min, max, step int) []int {
	if step <= 0 || min < 0 {
		return nil
	}
	var values []int
	for n := min; n <= max; n += step {
		values = append(values, n)
		if n > max-step {
			break
		}
	}
	return values
}

// Sweep evaluates corpus once per near-miss value and returns results sorted
// best first: descending score, or ascending for the error rates WindowDiff
// and Pk. Undefined scores sort last. opts apply to every
// evaluation; the near-miss option is overridden per value.
func Sweep(ctx context.Context, corpus segeval.Corpus, cfg Config, values []int, opts ...segeval.Option) ([]SweepResult, error) {
	var results []SweepResult

	for _, n := range values {
		e, err := segeval.New(append(slices.Clip(opts), segeval.WithNearMiss(n))...)
		if err != nil {
			return nil, err
		}

		m, err := evaluate(ctx, e, corpus, cfg)
		_ = e.Close()
		if err != nil {
			return nil, fmt.Errorf("near miss %d: %w", n, err)
		}

		results = append(results, SweepResult{
			NearMiss: n,
			Metrics:  m,
		})
	}

	sortResults(results, cfg.Metric)
	return results, nil
}

func evaluate(ctx context.Context, e *segeval.Evaluator, corpus segeval.Corpus, cfg Config) (Metrics, error) {
	res, err := e.Evaluate(ctx, corpus, cfg.Metric)
	if err != nil {
		return Metrics{}, err
	}

	var pr [2]float64
	for i, m := range []segeval.Metric{segeval.MetricPrecision, segeval.MetricRecall} {
		r, err := e.Evaluate(ctx, corpus, m)
		if err != nil {
			return Metrics{}, err
		}
		pr[i], _ = r.Score.Value()
	}
	return newMetrics(res.Score, pr[0], pr[1], cfg), nil
}

// sortResults orders best first, undefined last, keeping sweep order among
// equal scores.
func sortResults(results []SweepResult, m segeval.Metric) {
	errorRate := m.ErrorRate()

	sort.SliceStable(results, func(i, j int) bool {
		a, aok := results[i].Metrics.Score.Value()
		b, bok := results[j].Metrics.Score.Value()
		if aok != bok {
			return aok
		}
		if errorRate {
			return a < b
		}
		return a > b
	})
}
