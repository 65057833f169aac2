// Package metric computes similarity, windowed error and chance-corrected
// agreement statistics from alignments and confusion matrices.
//
// Every function here is pure. Inputs are assumed valid; validation belongs
// to the boundary and align packages.
package metric

import (
	"errors"
	"strconv"
)

// ErrUndefinedStatistic indicates a statistic whose denominator is zero,
// e.g. a chance-corrected coefficient when chance agreement is 1.
var ErrUndefinedStatistic = errors.New("segeval: statistic undefined")

// Score is either a defined value or undefined. Undefined scores must not be
// read as numbers; use Value or Float.
type Score struct {
	value   float64
	defined bool
}

// Defined wraps v as a defined score.
func Defined(v float64) Score { return Score{value: v, defined: true} }

// Undefined returns the undefined score.
func Undefined() Score { return Score{} }

// Value returns the score and whether it is defined.
func (s Score) Value() (float64, bool) { return s.value, s.defined }

// IsDefined reports whether the score has a value.
func (s Score) IsDefined() bool { return s.defined }

// Float returns the value, or ErrUndefinedStatistic.
func (s Score) Float() (float64, error) {
	if !s.defined {
		return 0, ErrUndefinedStatistic
	}
	return s.value, nil
}

func (s Score) String() string {
	if !s.defined {
		return "undefined"
	}
	return strconv.FormatFloat(s.value, 'f', 4, 64)
}
