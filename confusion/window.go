package confusion

import (
	"errors"
	"fmt"

	"github.com/jamesainslie/go-segeval/boundary"
)

// ErrInvalidWindow indicates a negative window size.
var ErrInvalidWindow = errors.New("segeval: window size must be non-negative")

// FromWindows slides a window of k units over the document and counts, for
// each window position, how many boundaries ref and hyp place inside it.
// Cell (r, h) holds the number of windows where ref has r and hyp has h
// boundaries.
//
// k == 0 selects boundary.WindowSize(ref). When k reaches past the end of the
// document the single window is truncated at the last potential boundary.
func FromWindows(ref, hyp boundary.Segmentation, k int) (Matrix[int], error) {
	if k < 0 {
		return Matrix[int]{}, fmt.Errorf("%w: %d", ErrInvalidWindow, k)
	}
	if !ref.Valid() || !hyp.Valid() {
		return Matrix[int]{}, fmt.Errorf("%w: uninitialised segmentation", boundary.ErrMalformedSegmentation)
	}
	if err := boundary.Comparable(ref, hyp); err != nil {
		return Matrix[int]{}, err
	}
	if k == 0 {
		k = boundary.WindowSize(ref)
	}

	units := ref.Total()
	refCounts := prefixCounts(ref.Positions(), units)
	hypCounts := prefixCounts(hyp.Positions(), units)

	m := NewMatrix[int](1)
	windows := max(1, units-k)
	for i := range windows {
		end := min(i+k, units-1)
		r := refCounts[end] - refCounts[i]
		h := hypCounts[end] - hypCounts[i]
		m.Add(r, h, 1)
	}
	return m, nil
}

// prefixCounts returns c where c[x] is the number of boundaries at or before x.
func prefixCounts(positions []int, units int) []int {
	counts := make([]int, units+1)
	for _, p := range positions {
		counts[p]++
	}
	for x := 1; x <= units; x++ {
		counts[x] += counts[x-1]
	}
	return counts
}
