package segeval

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/jamesainslie/go-segeval/align"
	"github.com/jamesainslie/go-segeval/boundary"
	"github.com/jamesainslie/go-segeval/confusion"
	"github.com/jamesainslie/go-segeval/metric"
)

// Document maps coder ids to their segmentation of one item.
type Document map[string]boundary.Segmentation

// Coders returns the coder ids in sort order.
func (d Document) Coders() []string {
	return slices.Sorted(maps.Keys(d))
}

// Units returns the document length, or 0 for an empty document.
func (d Document) Units() int {
	for _, s := range d {
		return s.Total()
	}
	return 0
}

// Corpus maps document ids to documents.
type Corpus map[string]Document

// IDs returns the document ids in sort order.
func (c Corpus) IDs() []string {
	return slices.Sorted(maps.Keys(c))
}

// Set stores coder's segmentation of document id, creating the document if
// needed.
func (c Corpus) Set(id, coder string, s boundary.Segmentation) {
	doc, ok := c[id]
	if !ok {
		doc = make(Document)
		c[id] = doc
	}
	doc[coder] = s
}

// Merge copies every document of other into c. Codings already present in c
// are overwritten.
func (c Corpus) Merge(other Corpus) {
	for id, doc := range other {
		for coder, s := range doc {
			c.Set(id, coder, s)
		}
	}
}

// CompareBoundaries aligns the boundaries of a and b with near-miss window n.
func CompareBoundaries(a, b boundary.Segmentation, nearMiss int) (align.Alignment, error) {
	return align.Boundaries(a, b, nearMiss)
}

// BoundarySimilarity returns 1 - cost/maxCost of aligning a and b. The
// result is in [0, 1] and is 1 for identical segmentations.
func BoundarySimilarity(a, b boundary.Segmentation, nearMiss int) (float64, error) {
	al, err := align.Boundaries(a, b, nearMiss)
	if err != nil {
		return 0, err
	}
	return metric.BoundarySimilarity(al), nil
}

// SegmentationSimilarity generalises BoundarySimilarity to any number of
// coders: the edit cost of every unordered coder pair is pooled and divided
// by the pooled boundary count.
func SegmentationSimilarity(doc Document, nearMiss int) (float64, error) {
	if err := validateDocument("", doc); err != nil {
		return 0, err
	}

	var ws align.Workspace
	coders := doc.Coders()
	var tally confusion.Tally
	for i, a := range coders {
		for _, b := range coders[i+1:] {
			al, err := ws.Align(doc[a], doc[b], nearMiss)
			if err != nil {
				return 0, fmt.Errorf("comparing %s and %s: %w", a, b, err)
			}
			tally = tally.Merge(confusion.TallyOf(al))
		}
	}
	return metric.TallySimilarity(tally), nil
}

// WindowedDifference returns WindowDiff of hypothesis b against reference a.
// window 0 selects half the mean segment length of a.
func WindowedDifference(a, b boundary.Segmentation, window int) (float64, error) {
	m, err := confusion.FromWindows(a, b, window)
	if err != nil {
		return 0, err
	}
	return metric.WindowDiff(m), nil
}

// Pk returns the Pk error of hypothesis b against reference a.
// window 0 selects half the mean segment length of a.
func Pk(a, b boundary.Segmentation, window int) (float64, error) {
	m, err := confusion.FromWindows(a, b, window)
	if err != nil {
		return 0, err
	}
	return metric.Pk(m), nil
}

// AgreementCoefficient computes kind over the whole corpus. Counts are pooled
// across documents unless opts select Mean aggregation.
func AgreementCoefficient(ctx context.Context, corpus Corpus, kind Metric, opts ...Option) (metric.Score, error) {
	e, err := New(append([]Option{WithAggregation(Pooled)}, opts...)...)
	if err != nil {
		return metric.Undefined(), err
	}
	defer func() { _ = e.Close() }()

	res, err := e.Evaluate(ctx, corpus, kind)
	if err != nil {
		return metric.Undefined(), err
	}
	return res.Score, nil
}

// validateDocument checks that doc holds at least two valid, mutually
// comparable segmentations.
func validateDocument(id string, doc Document) error {
	if len(doc) < 2 {
		return fmt.Errorf("%w: document %q has %d", ErrInsufficientCoders, id, len(doc))
	}

	coders := doc.Coders()
	first := doc[coders[0]]
	for _, coder := range coders {
		s := doc[coder]
		if !s.Valid() {
			return fmt.Errorf("%w: document %q coder %q", ErrMalformedSegmentation, id, coder)
		}
		if err := boundary.Comparable(first, s); err != nil {
			return fmt.Errorf("document %q coder %q: %w", id, coder, err)
		}
	}
	return nil
}
