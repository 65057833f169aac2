package metric

import (
	"cmp"

	"github.com/jamesainslie/go-segeval/confusion"
)

// Kappa returns Cohen's kappa for m: (Ao - Ae) / (1 - Ae) with Ae computed
// from the product of each coder's own marginals.
// Undefined when m is empty or Ae == 1.
func Kappa[C cmp.Ordered](m confusion.Matrix[C]) Score {
	if degenerate(m) {
		return Undefined()
	}

	total := float64(m.TotalUnits())
	var ae float64
	for _, c := range m.Categories() {
		ae += (float64(m.RowUnits(c)) / total) * (float64(m.ColUnits(c)) / total)
	}
	return Defined(chanceCorrect(observed(m), ae))
}

// Pi returns Scott's pi for m, the multi-coder form Fleiss generalised:
// Ae uses the marginals pooled across both coders.
// Undefined when m is empty or Ae == 1.
func Pi[C cmp.Ordered](m confusion.Matrix[C]) Score {
	if degenerate(m) {
		return Undefined()
	}

	total := 2 * float64(m.TotalUnits())
	var ae float64
	for _, c := range m.Categories() {
		p := float64(m.RowUnits(c)+m.ColUnits(c)) / total
		ae += p * p
	}
	return Defined(chanceCorrect(observed(m), ae))
}

// Alpha returns Krippendorff's alpha for nominal data, treating m as pairs of
// values: 1 - (n-1) * D / E, with D the off-diagonal coincidences and E the
// expected disagreement from pooled category frequencies.
// Undefined when m is empty or holds a single category.
func Alpha[C cmp.Ordered](m confusion.Matrix[C]) Score {
	if degenerate(m) {
		return Undefined()
	}

	scale := float64(m.Scale())
	n := 2 * float64(m.TotalUnits()) / scale
	if n <= 1 {
		return Undefined()
	}

	cats := m.Categories()
	var disagree, sumSquares float64
	for _, c := range cats {
		nc := float64(m.RowUnits(c)+m.ColUnits(c)) / scale
		sumSquares += nc * nc
		for _, k := range cats {
			if c != k {
				disagree += float64(m.Units(c, k)+m.Units(k, c)) / scale
			}
		}
	}

	expected := n*n - sumSquares
	if expected == 0 {
		return Undefined()
	}
	return Defined(1 - (n-1)*disagree/expected)
}

// observed returns the diagonal share of m.
func observed[C cmp.Ordered](m confusion.Matrix[C]) float64 {
	var agree int64
	for _, c := range m.Categories() {
		agree += m.Units(c, c)
	}
	return float64(agree) / float64(m.TotalUnits())
}

// degenerate reports whether chance agreement is exactly 1: an empty matrix,
// or one where every count falls in a single category.
func degenerate[C cmp.Ordered](m confusion.Matrix[C]) bool {
	return m.TotalUnits() == 0 || len(m.Categories()) < 2
}

func chanceCorrect(ao, ae float64) float64 {
	return (ao - ae) / (1 - ae)
}
