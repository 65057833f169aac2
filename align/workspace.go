package align

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/jamesainslie/go-segeval/boundary"
)

const (
	movePair byte = iota + 1
	moveDelete
	moveAdd
)

// Workspace holds the dynamic-programming tables for Align so repeated
// alignments can reuse them. A Workspace is not safe for concurrent use;
// share workspaces through a Pool.
type Workspace struct {
	cost []int64
	move []byte
}

// Align computes a minimum-cost monotonic alignment between the boundaries of
// reference and hypothesis.
//
// Costs are integer units of 1/(nearMiss+1): an exact match costs 0, a pair
// distance d apart (d <= nearMiss) costs d, and an unmatched boundary costs
// nearMiss+1. On equal cost a pairing is preferred over a deletion, and a
// deletion over an addition.
//
// Windows wider than the document are capped at the document length, which
// keeps costs within int64; the returned Alignment records the capped window.
func (w *Workspace) Align(reference, hypothesis boundary.Segmentation, nearMiss int) (Alignment, error) {
	if nearMiss < 0 {
		return Alignment{}, fmt.Errorf("%w: %d", ErrInvalidNearMiss, nearMiss)
	}
	if !reference.Valid() || !hypothesis.Valid() {
		return Alignment{}, fmt.Errorf("%w: uninitialised segmentation", boundary.ErrMalformedSegmentation)
	}
	if err := boundary.Comparable(reference, hypothesis); err != nil {
		return Alignment{}, err
	}

	nearMiss = min(nearMiss, reference.Total())

	a := reference.Positions()
	b := hypothesis.Positions()
	unit := int64(nearMiss) + 1
	rows, cols := len(a)+1, len(b)+1

	w.reset(rows * cols)
	at := func(i, j int) int { return i*cols + j }

	for i := 1; i < rows; i++ {
		w.cost[at(i, 0)] = int64(i) * unit
		w.move[at(i, 0)] = moveDelete
	}
	for j := 1; j < cols; j++ {
		w.cost[at(0, j)] = int64(j) * unit
		w.move[at(0, j)] = moveAdd
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			best := w.cost[at(i-1, j)] + unit
			move := moveDelete

			if c := w.cost[at(i, j-1)] + unit; c < best {
				best, move = c, moveAdd
			}

			if d := distance(a[i-1], b[j-1]); d <= nearMiss {
				if c := w.cost[at(i-1, j-1)] + int64(d); c <= best {
					best, move = c, movePair
				}
			}

			w.cost[at(i, j)] = best
			w.move[at(i, j)] = move
		}
	}

	ops := make([]Op, 0, len(a)+len(b))
	i, j := len(a), len(b)
	for i > 0 || j > 0 {
		switch w.move[at(i, j)] {
		case movePair:
			d := distance(a[i-1], b[j-1])
			kind := Transposition
			if d == 0 {
				kind = Match
			}
			ops = append(ops, Op{Kind: kind, Reference: a[i-1], Hypothesis: b[j-1], Distance: d})
			i--
			j--
		case moveDelete:
			ops = append(ops, Op{Kind: Deletion, Reference: a[i-1], Hypothesis: None})
			i--
		default:
			ops = append(ops, Op{Kind: Addition, Reference: None, Hypothesis: b[j-1]})
			j--
		}
	}

	// Traceback runs from the end of the document; unpaired boundaries on
	// the path may interleave out of position order.
	slices.Reverse(ops)
	slices.SortStableFunc(ops, func(x, y Op) int {
		return cmp.Compare(x.position(), y.position())
	})

	return Alignment{
		Ops:                  ops,
		NearMiss:             nearMiss,
		Units:                reference.Total(),
		ReferenceBoundaries:  len(a),
		HypothesisBoundaries: len(b),
		costUnits:            w.cost[at(len(a), len(b))],
	}, nil
}

func (w *Workspace) reset(n int) {
	if cap(w.cost) < n {
		w.cost = make([]int64, n)
		w.move = make([]byte, n)
	}
	w.cost = w.cost[:n]
	w.move = w.move[:n]
	w.cost[0] = 0
	w.move[0] = 0
}

func distance(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}
