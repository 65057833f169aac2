package segeval

import (
	"log/slog"
	"runtime"
)

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	nearMiss    int
	window      int
	pairing     Pairing
	reference   string
	aggregation Aggregation
	weighted    bool
	oneMinus    bool
	workers     int
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		nearMiss:    2,
		pairing:     AllPairs,
		aggregation: Mean,
		workers:     runtime.NumCPU(),
		logger:      slog.Default(),
	}
}

// WithNearMiss sets the near-miss window in units (default: 2).
func WithNearMiss(n int) Option {
	return func(c *config) {
		c.nearMiss = n
	}
}

// WithWindow sets the window size for WindowDiff and Pk. Zero selects half
// the mean reference segment length (default: 0).
func WithWindow(k int) Option {
	return func(c *config) {
		c.window = k
	}
}

// WithPairing sets how coders are paired within a document (default: AllPairs).
func WithPairing(p Pairing) Option {
	return func(c *config) {
		c.pairing = p
	}
}

// WithReference sets the reference coder for OneVsRest pairing
// (default: the first coder id in sort order).
func WithReference(coder string) Option {
	return func(c *config) {
		c.reference = coder
	}
}

// WithAggregation sets how document results combine into a corpus score
// (default: Mean).
func WithAggregation(a Aggregation) Option {
	return func(c *config) {
		c.aggregation = a
	}
}

// WithLengthWeighting weights document scores by document length in Mean
// aggregation.
func WithLengthWeighting(on bool) Option {
	return func(c *config) {
		c.weighted = on
	}
}

// WithOneMinus reports WindowDiff and Pk as 1 minus the error rate, so that
// 1 means perfect agreement like the other metrics.
func WithOneMinus(on bool) Option {
	return func(c *config) {
		c.oneMinus = on
	}
}

// WithWorkers sets how many documents are evaluated concurrently
// (default: runtime.NumCPU()).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
