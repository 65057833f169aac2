package metric

import (
	"github.com/jamesainslie/go-segeval/align"
	"github.com/jamesainslie/go-segeval/confusion"
)

// BoundarySimilarity returns 1 - cost/maxCost for one alignment, where
// maxCost is the total number of boundaries on both sides. Two segmentations
// without boundaries are identical and score 1.
func BoundarySimilarity(al align.Alignment) float64 {
	return similarity(al.CostUnits(), al.Scale(), al.ReferenceBoundaries+al.HypothesisBoundaries)
}

// TallySimilarity is BoundarySimilarity over pooled tallies: the summed cost
// of every comparison divided by the summed boundary count.
func TallySimilarity(t confusion.Tally) float64 {
	scale := t.Scale
	if scale <= 0 {
		scale = 1
	}
	return similarity(t.CostUnits, scale, t.Boundaries)
}

func similarity(costUnits, scale int64, boundaries int) float64 {
	if boundaries == 0 {
		return 1
	}
	return 1 - float64(costUnits)/(float64(scale)*float64(boundaries))
}
