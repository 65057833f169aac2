package segeval

import (
	"fmt"

	"github.com/jamesainslie/go-segeval/align"
	"github.com/jamesainslie/go-segeval/confusion"
	"github.com/jamesainslie/go-segeval/metric"
)

// Metric selects the statistic an Evaluator computes.
type Metric int

const (
	// MetricB is boundary similarity, averaged over coder pairs.
	MetricB Metric = iota
	// MetricS is segmentation similarity: edit cost pooled over coder pairs.
	MetricS
	// MetricWindowDiff is the windowed boundary-count error rate.
	MetricWindowDiff
	// MetricPk is the probability that a window's ends are misclassified.
	MetricPk
	// MetricKappa is Cohen's kappa over boundary presence.
	MetricKappa
	// MetricPi is Scott's pi over boundary presence.
	MetricPi
	// MetricAlpha is Krippendorff's alpha over boundary presence.
	MetricAlpha
	// MetricF1 is the boundary F1 score.
	MetricF1
	// MetricPrecision is boundary precision.
	MetricPrecision
	// MetricRecall is boundary recall.
	MetricRecall
	// MetricWinF1 is the F1 score of window precision and recall.
	MetricWinF1
	// MetricWinPrecision is window precision.
	MetricWinPrecision
	// MetricWinRecall is window recall.
	MetricWinRecall
)

var metricNames = map[Metric]string{
	MetricB:          "b",
	MetricS:          "s",
	MetricWindowDiff: "windowdiff",
	MetricPk:         "pk",
	MetricKappa:      "kappa",
	MetricPi:         "pi",
	MetricAlpha:      "alpha",
	MetricF1:         "f1",
	MetricPrecision:  "precision",
	MetricRecall:     "recall",

	MetricWinF1:        "winf1",
	MetricWinPrecision: "winprecision",
	MetricWinRecall:    "winrecall",
}

func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// ParseMetric returns the metric with the given name.
func ParseMetric(name string) (Metric, error) {
	for m, n := range metricNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// windowed reports whether m is computed from window matrices rather than
// boundary alignments.
func (m Metric) windowed() bool {
	switch m {
	case MetricWindowDiff, MetricPk, MetricWinF1, MetricWinPrecision, MetricWinRecall:
		return true
	}
	return false
}

// ErrorRate reports whether lower values of m mean closer agreement.
func (m Metric) ErrorRate() bool {
	return m == MetricWindowDiff || m == MetricPk
}

// pairScore scores one aligned coder pair.
func (m Metric) pairScore(al align.Alignment, presence confusion.Matrix[confusion.Category]) metric.Score {
	switch m {
	case MetricB, MetricS:
		return metric.Defined(metric.BoundarySimilarity(al))
	default:
		return m.presenceScore(presence)
	}
}

// windowScore scores one windowed coder pair.
func (m Metric) windowScore(windows confusion.Matrix[int]) metric.Score {
	switch m {
	case MetricPk:
		return metric.Defined(metric.Pk(windows))
	case MetricWinF1:
		return metric.Defined(metric.WinPR(windows).F1)
	case MetricWinPrecision:
		return metric.Defined(metric.WinPR(windows).Precision)
	case MetricWinRecall:
		return metric.Defined(metric.WinPR(windows).Recall)
	default:
		return metric.Defined(metric.WindowDiff(windows))
	}
}

// presenceScore scores a boundary-presence matrix.
func (m Metric) presenceScore(presence confusion.Matrix[confusion.Category]) metric.Score {
	switch m {
	case MetricKappa:
		return metric.Kappa(presence)
	case MetricPi:
		return metric.Pi(presence)
	case MetricAlpha:
		return metric.Alpha(presence)
	case MetricF1:
		return metric.Defined(metric.RetrievalOf(presence).F1)
	case MetricPrecision:
		return metric.Defined(metric.RetrievalOf(presence).Precision)
	case MetricRecall:
		return metric.Defined(metric.RetrievalOf(presence).Recall)
	default:
		return metric.Undefined()
	}
}

// pooledScore scores accumulated counts.
func (m Metric) pooledScore(acc accumulator) metric.Score {
	switch {
	case m == MetricB || m == MetricS:
		return metric.Defined(metric.TallySimilarity(acc.tally))
	case m.windowed():
		return m.windowScore(acc.windows)
	default:
		return m.presenceScore(acc.presence)
	}
}

// Pairing selects which coder pairs are compared within a document.
type Pairing int

const (
	// AllPairs compares every unordered pair once. The coder whose id sorts
	// first acts as reference.
	AllPairs Pairing = iota
	// OneVsRest compares the reference coder with every other coder.
	OneVsRest
	// Permuted compares every ordered pair, so each coder serves as
	// reference against every other.
	Permuted
)

var pairingNames = map[Pairing]string{
	AllPairs:  "all",
	OneVsRest: "one-vs-rest",
	Permuted:  "permuted",
}

func (p Pairing) String() string {
	if name, ok := pairingNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Pairing(%d)", int(p))
}

// ParsePairing returns the pairing with the given name.
func ParsePairing(name string) (Pairing, error) {
	for p, n := range pairingNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: pairing %q", ErrUnknownMetric, name)
}

// Aggregation selects how document results combine into a corpus score.
type Aggregation int

const (
	// Mean averages per-document scores.
	Mean Aggregation = iota
	// Pooled sums counts across all documents and scores them once.
	Pooled
)

func (a Aggregation) String() string {
	switch a {
	case Mean:
		return "mean"
	case Pooled:
		return "pooled"
	default:
		return fmt.Sprintf("Aggregation(%d)", int(a))
	}
}

// ParseAggregation returns the aggregation with the given name.
func ParseAggregation(name string) (Aggregation, error) {
	switch name {
	case "mean":
		return Mean, nil
	case "pooled":
		return Pooled, nil
	default:
		return 0, fmt.Errorf("%w: aggregation %q", ErrUnknownMetric, name)
	}
}
