// Package boundary encodes segmentations as boundary masses and boundary
// position sets.
package boundary

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrMalformedSegmentation indicates an empty mass sequence, a non-positive
	// mass, or a position set that does not fit its total.
	ErrMalformedSegmentation = errors.New("segeval: malformed segmentation")

	// ErrIncomparableSegmentations indicates two segmentations of different
	// total unit counts.
	ErrIncomparableSegmentations = errors.New("segeval: incomparable segmentations")
)

// minWindow is the smallest default window size.
const minWindow = 2

// Segmentation is an immutable sequence of segment masses.
// The zero value is not a valid segmentation; use New.
type Segmentation struct {
	masses    []int
	positions []int
	total     int
}

// New creates a Segmentation from segment masses. The masses are copied.
func New(masses ...int) (Segmentation, error) {
	positions, err := ToPositions(masses)
	if err != nil {
		return Segmentation{}, err
	}
	return Segmentation{
		masses:    slices.Clone(masses),
		positions: positions,
		total:     sum(masses),
	}, nil
}

// MustNew is like New but panics on invalid masses. Intended for tests and
// fixed fixtures.
func MustNew(masses ...int) Segmentation {
	s, err := New(masses...)
	if err != nil {
		panic(err)
	}
	return s
}

// FromPositions creates a Segmentation from boundary positions over total units.
func FromPositions(positions []int, total int) (Segmentation, error) {
	masses, err := ToMasses(positions, total)
	if err != nil {
		return Segmentation{}, err
	}
	return Segmentation{
		masses:    masses,
		positions: slices.Clone(positions),
		total:     total,
	}, nil
}

// FromLabels creates a Segmentation from one segment label per unit, e.g.
// [1 1 2 2 2 3]. A boundary is placed wherever the label changes.
func FromLabels(labels []int) (Segmentation, error) {
	if len(labels) == 0 {
		return Segmentation{}, fmt.Errorf("%w: no labels", ErrMalformedSegmentation)
	}

	var masses []int
	run := 1
	for i := 1; i < len(labels); i++ {
		if labels[i] == labels[i-1] {
			run++
			continue
		}
		masses = append(masses, run)
		run = 1
	}
	masses = append(masses, run)

	return New(masses...)
}

// ToPositions converts masses to boundary positions, excluding 0 and the total.
func ToPositions(masses []int) ([]int, error) {
	if len(masses) == 0 {
		return nil, fmt.Errorf("%w: no masses", ErrMalformedSegmentation)
	}

	positions := make([]int, 0, len(masses)-1)
	at := 0
	for i, m := range masses {
		if m <= 0 {
			return nil, fmt.Errorf("%w: mass %d at index %d", ErrMalformedSegmentation, m, i)
		}
		at += m
		if i < len(masses)-1 {
			positions = append(positions, at)
		}
	}
	return positions, nil
}

// ToMasses converts strictly increasing boundary positions within (0, total)
// back to masses.
func ToMasses(positions []int, total int) ([]int, error) {
	if total < len(positions)+1 {
		return nil, fmt.Errorf("%w: total %d too small for %d boundaries",
			ErrMalformedSegmentation, total, len(positions))
	}

	masses := make([]int, 0, len(positions)+1)
	prev := 0
	for _, p := range positions {
		if p <= prev || p >= total {
			return nil, fmt.Errorf("%w: position %d out of order or range", ErrMalformedSegmentation, p)
		}
		masses = append(masses, p-prev)
		prev = p
	}
	return append(masses, total-prev), nil
}

// Comparable reports ErrIncomparableSegmentations when a and b cover a
// different number of units.
func Comparable(a, b Segmentation) error {
	if a.total != b.total {
		return fmt.Errorf("%w: %d units vs %d units", ErrIncomparableSegmentations, a.total, b.total)
	}
	return nil
}

// Masses returns a copy of the segment masses.
func (s Segmentation) Masses() []int { return slices.Clone(s.masses) }

// Positions returns a copy of the boundary positions.
func (s Segmentation) Positions() []int { return slices.Clone(s.positions) }

// Total returns the number of units covered.
func (s Segmentation) Total() int { return s.total }

// Segments returns the number of segments.
func (s Segmentation) Segments() int { return len(s.masses) }

// Boundaries returns the number of internal boundaries.
func (s Segmentation) Boundaries() int { return len(s.positions) }

// PotentialBoundaries returns the number of positions that could hold a boundary.
func (s Segmentation) PotentialBoundaries() int {
	if s.total == 0 {
		return 0
	}
	return s.total - 1
}

// Valid reports whether s was built by one of the constructors.
func (s Segmentation) Valid() bool { return s.total > 0 }

// Labels returns one segment label per unit, numbered from 1.
func (s Segmentation) Labels() []int {
	labels := make([]int, 0, s.total)
	for i, m := range s.masses {
		for range m {
			labels = append(labels, i+1)
		}
	}
	return labels
}

// Equal reports whether both segmentations have identical masses.
func (s Segmentation) Equal(o Segmentation) bool {
	return slices.Equal(s.masses, o.masses)
}

// String formats s as its mass sequence.
func (s Segmentation) String() string {
	return fmt.Sprint(s.masses)
}

// WindowSize returns the default window size for ref: half its mean segment
// length, rounded half away from zero, and never below 2.
func WindowSize(ref Segmentation) int {
	if len(ref.masses) == 0 {
		return minWindow
	}
	mean := float64(ref.total) / float64(len(ref.masses))
	k := int(math.Round(mean / 2))
	return max(k, minWindow)
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
