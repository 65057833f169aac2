package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	segeval "github.com/jamesainslie/go-segeval"
	"github.com/jamesainslie/go-segeval/dataset"
	"github.com/jamesainslie/go-segeval/internal/bench"
)

func main() {
	var (
		corpusDir   = flag.String("corpus", "testdata/corpus", "Directory or file containing the corpus")
		metricName  = flag.String("metric", "b", "Metric to optimise")
		pairingName = flag.String("pairing", "all", "Pairing: all, one-vs-rest or permuted")
		reference   = flag.String("reference", "", "Reference coder for one-vs-rest pairing")
		aggName     = flag.String("aggregation", "mean", "Aggregation: mean or pooled")
		wp          = flag.Float64("wp", 1.0, "Precision weight")
		wr          = flag.Float64("wr", 1.0, "Recall weight")
		sweepMin    = flag.Int("sweep-min", 0, "Sweep minimum near-miss window")
		sweepMax    = flag.Int("sweep-max", 5, "Sweep maximum near-miss window")
		sweepStep   = flag.Int("sweep-step", 1, "Sweep step size")
	)
	flag.Parse()

	m, err := segeval.ParseMetric(*metricName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	pairing, err := segeval.ParsePairing(*pairingName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	agg, err := segeval.ParseAggregation(*aggName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ds, err := dataset.Load(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d documents from %s\n\n", len(ds.Corpus), *corpusDir)

	cfg := bench.Config{
		Metric:          m,
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
	}
	values := bench.NearMissRange(*sweepMin, *sweepMax, *sweepStep)
	if len(values) == 0 {
		fmt.Fprintln(os.Stderr, "error: empty sweep range")
		os.Exit(1)
	}

	results, err := bench.Sweep(context.Background(), ds.Corpus, cfg, values,
		segeval.WithPairing(pairing),
		segeval.WithReference(*reference),
		segeval.WithAggregation(agg),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error during sweep: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Near-miss Sweep Results (%s, wp=%.1f, wr=%.1f)\n", m, cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-8s %-10s %-8s %-8s %-8s %-8s\n", "n", "Score", "Prec", "Rec", "F1", "Weighted")

	// Print sorted by near-miss value for readability
	for _, n := range values {
		for _, r := range results {
			if r.NearMiss == n {
				fmt.Printf("%-8d %-10s %-8.2f %-8.2f %-8.2f %-8.2f\n",
					r.NearMiss, r.Metrics.Score, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1, r.Metrics.WeightedScore)
				break
			}
		}
	}

	fmt.Println(strings.Repeat("-", 50))
	if len(results) > 0 {
		best := results[0]
		fmt.Printf("Optimal: n=%d (%s: %s)\n", best.NearMiss, m, best.Metrics.Score)
	}
}
