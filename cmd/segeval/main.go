package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	segeval "github.com/jamesainslie/go-segeval"
	"github.com/jamesainslie/go-segeval/dataset"
)

func main() {
	var (
		metricName  = flag.String("metric", "b", "Metric: b, s, windowdiff, pk, kappa, pi, alpha, f1, precision, recall, winf1, winprecision, winrecall")
		nearMiss    = flag.Int("n", 2, "Near-miss window in units")
		window      = flag.Int("window", 0, "Window size for windowdiff and pk (0 = auto)")
		pairingName = flag.String("pairing", "all", "Pairing: all, one-vs-rest or permuted")
		reference   = flag.String("reference", "", "Reference coder for one-vs-rest pairing")
		aggName     = flag.String("aggregation", "mean", "Aggregation: mean or pooled")
		weighted    = flag.Bool("weighted", false, "Weight documents by length in mean aggregation")
		oneMinus    = flag.Bool("one-minus", false, "Report windowdiff and pk as 1 minus the error rate")
		workers     = flag.Int("workers", runtime.NumCPU(), "Documents evaluated concurrently")
		pack        = flag.String("pack", "", "Also write the loaded corpus to this .segpb file")
		output      = flag.String("o", "", "Write per-pair values to this TSV file")
		detailed    = flag.Bool("de", false, "With -o, write one row per edit instead of per pair")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: segeval [OPTIONS] FILE|DIR...")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	m, err := segeval.ParseMetric(*metricName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	pairing, err := segeval.ParsePairing(*pairingName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	agg, err := segeval.ParseAggregation(*aggName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ds := dataset.Dataset{Corpus: segeval.Corpus{}}
	for _, path := range flag.Args() {
		part, err := dataset.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
			os.Exit(1)
		}
		if ds.Name == "" {
			ds.Name = part.Name
		}
		ds.Corpus.Merge(part.Corpus)
		logger.Debug("dataset loaded", "path", path, "documents", len(part.Corpus))
	}

	if *pack != "" {
		if err := dataset.WriteBinary(*pack, ds); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *pack, err)
			os.Exit(1)
		}
		logger.Info("corpus packed", "path", *pack, "documents", len(ds.Corpus))
	}

	e, err := segeval.New(
		segeval.WithNearMiss(*nearMiss),
		segeval.WithWindow(*window),
		segeval.WithPairing(pairing),
		segeval.WithReference(*reference),
		segeval.WithAggregation(agg),
		segeval.WithLengthWeighting(*weighted),
		segeval.WithOneMinus(*oneMinus),
		segeval.WithWorkers(*workers),
		segeval.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating evaluator: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = e.Close() }() // Cleanup error ignored in CLI

	res, err := e.Evaluate(context.Background(), ds.Corpus, m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		write := dataset.WritePairs
		if *detailed {
			write = dataset.WriteEdits
		}
		if err := writeTSV(*output, res, write); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *output, err)
			os.Exit(1)
		}
		logger.Info("pair values written", "path", *output, "detailed", *detailed)
	}

	fmt.Printf("Dataset: %s\n", ds.Name)
	fmt.Printf("Metric: %s (pairing=%s, aggregation=%s, n=%d)\n", m, pairing, agg, *nearMiss)
	fmt.Printf("Documents (%d):\n", len(res.Documents))
	for _, d := range res.Documents {
		fmt.Printf("  %-24s units=%-6d pairs=%-4d %s\n", d.ID, d.Units, len(d.Pairs), d.Score)
	}
	fmt.Printf("Corpus: %s\n", res.Score)
	if res.Undefined > 0 {
		fmt.Printf("Undefined documents: %d\n", res.Undefined)
	}

	s := res.Summary
	fmt.Printf("Pairs: Mean: %.4f  StdDev: %.4f  StdErr: %.4f  Min: %.4f  Max: %.4f  (n=%d)\n",
		s.Mean, s.StdDev, s.StdErr, s.Min, s.Max, s.N)
}

func writeTSV(path string, res segeval.Result, write func(io.Writer, segeval.Result) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, res); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
