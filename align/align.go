// Package align computes boundary edit distance alignments between two
// segmentations with near-miss tolerance.
package align

import (
	"errors"

	"github.com/jamesainslie/go-segeval/boundary"
)

// ErrInvalidNearMiss indicates a negative near-miss window.
var ErrInvalidNearMiss = errors.New("segeval: near-miss window must be non-negative")

// Kind classifies one boundary edit event.
type Kind uint8

const (
	// Match pairs two boundaries at the same position.
	Match Kind = iota
	// Transposition pairs two boundaries within the near-miss window.
	Transposition
	// Substitution exchanges one boundary type for another at the same
	// position. Align reports such events as a Deletion plus an Addition;
	// the kind exists so tallies from other sources can be merged.
	Substitution
	// Addition is a hypothesis boundary without a reference counterpart.
	Addition
	// Deletion is a reference boundary without a hypothesis counterpart.
	Deletion

	numKinds
)

// Kinds lists every edit kind in declaration order.
var Kinds = []Kind{Match, Transposition, Substitution, Addition, Deletion}

// NumKinds is the number of edit kinds.
const NumKinds = int(numKinds)

func (k Kind) String() string {
	switch k {
	case Match:
		return "match"
	case Transposition:
		return "transposition"
	case Substitution:
		return "substitution"
	case Addition:
		return "addition"
	case Deletion:
		return "deletion"
	default:
		return "unknown"
	}
}

// None marks a missing position on one side of an Op.
const None = -1

// Op is one edit operation. Reference and Hypothesis hold boundary positions,
// or None for the side that has no boundary.
type Op struct {
	Kind       Kind
	Reference  int
	Hypothesis int
	Distance   int
}

// position returns the leftmost position touched by op.
func (op Op) position() int {
	switch {
	case op.Reference == None:
		return op.Hypothesis
	case op.Hypothesis == None:
		return op.Reference
	default:
		return min(op.Reference, op.Hypothesis)
	}
}

// Alignment is an ordered edit script covering every boundary of the
// reference and the hypothesis exactly once. It must not be modified.
type Alignment struct {
	Ops                  []Op
	NearMiss             int
	Units                int
	ReferenceBoundaries  int
	HypothesisBoundaries int

	costUnits int64
}

// Scale is the number of cost units in one full edit.
func (a Alignment) Scale() int64 { return int64(a.NearMiss) + 1 }

// CostUnits returns the total cost in units of 1/Scale.
func (a Alignment) CostUnits() int64 { return a.costUnits }

// Cost returns the total edit cost. A full addition or deletion costs 1.
func (a Alignment) Cost() float64 {
	return float64(a.costUnits) / float64(a.Scale())
}

// MaxCost returns the cost of treating every boundary as unmatched.
func (a Alignment) MaxCost() float64 {
	return float64(a.ReferenceBoundaries + a.HypothesisBoundaries)
}

// Count returns the number of operations of kind k.
func (a Alignment) Count(k Kind) int {
	n := 0
	for _, op := range a.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Pairs returns the number of operations that pair two boundaries.
func (a Alignment) Pairs() int {
	return a.Count(Match) + a.Count(Transposition)
}

// Penalty returns the cost of pairing two boundaries distance units apart
// under near-miss window n. It is 0 for an exact match, grows linearly with
// distance, and reaches the cost of a full miss at distance n+1.
func Penalty(distance, n int) float64 {
	return float64(distance) / (float64(n) + 1)
}

// Boundaries aligns the boundaries of reference and hypothesis with
// near-miss window nearMiss using a fresh workspace.
func Boundaries(reference, hypothesis boundary.Segmentation, nearMiss int) (Alignment, error) {
	var w Workspace
	return w.Align(reference, hypothesis, nearMiss)
}
