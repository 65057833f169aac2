package confusion

import (
	"github.com/jamesainslie/go-segeval/align"
)

// Category classifies a potential boundary position.
type Category uint8

const (
	// NoBoundary marks a position without a boundary.
	NoBoundary Category = iota
	// Boundary marks a position holding a boundary.
	Boundary
)

func (c Category) String() string {
	if c == Boundary {
		return "boundary"
	}
	return "no-boundary"
}

// FromAlignment builds a boundary-presence matrix over the potential boundary
// positions of one alignment.
//
// A match counts once as (Boundary, Boundary). A transposition at distance d
// under window n earns 1-w agreement with w = d/(n+1), and w on each
// off-diagonal cell. Unmatched boundaries count fully off-diagonal. Positions
// with no boundary on either side count as (NoBoundary, NoBoundary).
func FromAlignment(al align.Alignment) Matrix[Category] {
	scale := al.Scale()
	m := NewMatrix[Category](scale)

	used := make(map[int]struct{}, len(al.Ops)*2)
	for _, op := range al.Ops {
		if op.Reference != align.None {
			used[op.Reference] = struct{}{}
		}
		if op.Hypothesis != align.None {
			used[op.Hypothesis] = struct{}{}
		}

		switch op.Kind {
		case align.Match, align.Substitution:
			m.Add(Boundary, Boundary, scale)
		case align.Transposition:
			d := int64(op.Distance)
			m.Add(Boundary, Boundary, scale-d)
			m.Add(Boundary, NoBoundary, d)
			m.Add(NoBoundary, Boundary, d)
		case align.Deletion:
			m.Add(Boundary, NoBoundary, scale)
		case align.Addition:
			m.Add(NoBoundary, Boundary, scale)
		}
	}

	if potential := al.Units - 1; potential > len(used) {
		m.Add(NoBoundary, NoBoundary, int64(potential-len(used))*scale)
	}
	return m
}

// Tally counts edit operations by kind together with their exact cost.
type Tally struct {
	Counts      [align.NumKinds]int
	Scale       int64
	CostUnits   int64
	Boundaries  int
	Comparisons int
}

// TallyOf tallies one alignment.
func TallyOf(al align.Alignment) Tally {
	t := Tally{
		Scale:       al.Scale(),
		CostUnits:   al.CostUnits(),
		Boundaries:  al.ReferenceBoundaries + al.HypothesisBoundaries,
		Comparisons: 1,
	}
	for _, op := range al.Ops {
		t.Counts[op.Kind]++
	}
	return t
}

// Count returns the number of operations of kind k.
func (t Tally) Count(k align.Kind) int {
	if int(k) >= len(t.Counts) {
		return 0
	}
	return t.Counts[k]
}

// Cost returns the total edit cost.
func (t Tally) Cost() float64 {
	return float64(t.CostUnits) / float64(t.scale())
}

// MaxCost returns the cost of treating every boundary as unmatched.
func (t Tally) MaxCost() float64 {
	return float64(t.Boundaries)
}

// Merge returns the sum of t and others.
func (t Tally) Merge(others ...Tally) Tally {
	scale := t.scale()
	for _, o := range others {
		scale = lcm(scale, o.scale())
	}

	out := Tally{Scale: scale}
	for _, src := range append([]Tally{t}, others...) {
		for k, n := range src.Counts {
			out.Counts[k] += n
		}
		out.CostUnits += src.CostUnits * (scale / src.scale())
		out.Boundaries += src.Boundaries
		out.Comparisons += src.Comparisons
	}
	return out
}

func (t Tally) scale() int64 {
	if t.Scale <= 0 {
		return 1
	}
	return t.Scale
}
