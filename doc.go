// Package segeval measures agreement between segmentations of the same
// sequence, such as documents split into topical segments by several coders.
//
// # Quick Start
//
//	a := boundary.MustNew(4, 6)
//	b := boundary.MustNew(5, 5)
//	sim, err := segeval.BoundarySimilarity(a, b, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("B = %.2f\n", sim) // B = 0.75
//
// # Corpora
//
// A Corpus maps document ids to a Document, which maps coder ids to
// segmentations. An Evaluator scores a whole corpus:
//
//	e, err := segeval.New(segeval.WithNearMiss(2), segeval.WithAggregation(segeval.Pooled))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Close()
//
//	res, err := e.Evaluate(ctx, corpus, segeval.MetricKappa)
//
// Chance-corrected coefficients are undefined when expected agreement is 1;
// check Result.Score before reading it.
//
// # Thread Safety
//
// Evaluator is safe for concurrent use. Documents are evaluated in parallel
// on a pool of alignment workspaces, configurable via WithWorkers. Results do
// not depend on the worker count.
package segeval
