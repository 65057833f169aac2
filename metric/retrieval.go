package metric

import "github.com/jamesainslie/go-segeval/confusion"

// Retrieval holds boundary detection scores with the reference as ground
// truth. Near-miss credit enters the counts fractionally.
type Retrieval struct {
	TruePositives  float64
	FalsePositives float64
	FalseNegatives float64
	Precision      float64
	Recall         float64
	F1             float64
}

// RetrievalOf derives precision, recall and F1 from a boundary-presence
// matrix. Each ratio is 0 when its denominator is 0.
func RetrievalOf(m confusion.Matrix[confusion.Category]) Retrieval {
	return retrieval(
		m.Count(confusion.Boundary, confusion.Boundary),
		m.Count(confusion.NoBoundary, confusion.Boundary),
		m.Count(confusion.Boundary, confusion.NoBoundary),
	)
}

func retrieval(tp, fp, fn float64) Retrieval {
	r := Retrieval{
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
	}

	if r.TruePositives+r.FalsePositives > 0 {
		r.Precision = r.TruePositives / (r.TruePositives + r.FalsePositives)
	}
	if r.TruePositives+r.FalseNegatives > 0 {
		r.Recall = r.TruePositives / (r.TruePositives + r.FalseNegatives)
	}
	if r.Precision+r.Recall > 0 {
		r.F1 = 2 * r.Precision * r.Recall / (r.Precision + r.Recall)
	}
	return r
}
