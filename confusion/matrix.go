// Package confusion accumulates alignments and window comparisons into
// confusion matrices and edit tallies.
//
// Counts are stored as exact integers over a common scale so that fractional
// near-miss credit never introduces rounding, and merging matrices in any
// order yields identical results.
package confusion

import (
	"cmp"
	"maps"
	"slices"
)

// Cell addresses one (actual, predicted) pair.
type Cell[C cmp.Ordered] struct {
	Actual    C
	Predicted C
}

// Matrix maps (actual, predicted) category pairs to counts. Actual is the
// reference coder, predicted the hypothesis coder. The zero value is an
// empty matrix with scale 1.
type Matrix[C cmp.Ordered] struct {
	scale int64
	cells map[Cell[C]]int64
}

// NewMatrix returns an empty matrix whose counts are units of 1/scale.
func NewMatrix[C cmp.Ordered](scale int64) Matrix[C] {
	if scale <= 0 {
		scale = 1
	}
	return Matrix[C]{scale: scale, cells: make(map[Cell[C]]int64)}
}

// Add increments the (actual, predicted) cell by units / Scale().
func (m *Matrix[C]) Add(actual, predicted C, units int64) {
	if units == 0 {
		return
	}
	if m.cells == nil {
		m.cells = make(map[Cell[C]]int64)
	}
	m.cells[Cell[C]{actual, predicted}] += units
}

// Scale returns the number of units per count.
func (m Matrix[C]) Scale() int64 {
	if m.scale <= 0 {
		return 1
	}
	return m.scale
}

// Units returns the raw units in a cell.
func (m Matrix[C]) Units(actual, predicted C) int64 {
	return m.cells[Cell[C]{actual, predicted}]
}

// Count returns the count in a cell.
func (m Matrix[C]) Count(actual, predicted C) float64 {
	return float64(m.Units(actual, predicted)) / float64(m.Scale())
}

// TotalUnits returns the sum of all cells in units.
func (m Matrix[C]) TotalUnits() int64 {
	var total int64
	for _, u := range m.cells {
		total += u
	}
	return total
}

// Total returns the sum of all counts.
func (m Matrix[C]) Total() float64 {
	return float64(m.TotalUnits()) / float64(m.Scale())
}

// RowUnits returns the units with actual category c.
func (m Matrix[C]) RowUnits(c C) int64 {
	var total int64
	for cell, u := range m.cells {
		if cell.Actual == c {
			total += u
		}
	}
	return total
}

// ColUnits returns the units with predicted category c.
func (m Matrix[C]) ColUnits(c C) int64 {
	var total int64
	for cell, u := range m.cells {
		if cell.Predicted == c {
			total += u
		}
	}
	return total
}

// Categories returns every category seen on either axis, in ascending order.
func (m Matrix[C]) Categories() []C {
	seen := make(map[C]struct{}, len(m.cells))
	for cell, u := range m.cells {
		if u == 0 {
			continue
		}
		seen[cell.Actual] = struct{}{}
		seen[cell.Predicted] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Merge returns a new matrix holding the sum of m and others. Matrices with
// different scales are lifted to their least common multiple.
func (m Matrix[C]) Merge(others ...Matrix[C]) Matrix[C] {
	scale := m.Scale()
	for _, o := range others {
		scale = lcm(scale, o.Scale())
	}

	out := NewMatrix[C](scale)
	for _, src := range append([]Matrix[C]{m}, others...) {
		factor := scale / src.Scale()
		for cell, u := range src.cells {
			out.cells[cell] += u * factor
		}
	}
	return out
}

// Equal reports whether m and o hold the same counts.
func (m Matrix[C]) Equal(o Matrix[C]) bool {
	scale := lcm(m.Scale(), o.Scale())
	fm, fo := scale/m.Scale(), scale/o.Scale()

	for cell, u := range m.cells {
		if u*fm != o.cells[cell]*fo {
			return false
		}
	}
	for cell, u := range o.cells {
		if u*fo != m.cells[cell]*fm {
			return false
		}
	}
	return true
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int64) int64 {
	return a / gcd(a, b) * b
}
