package metric

import "github.com/jamesainslie/go-segeval/confusion"

// WindowDiff returns the fraction of window positions where reference and
// hypothesis disagree on the number of boundaries inside the window.
// m is a window matrix from confusion.FromWindows.
func WindowDiff(m confusion.Matrix[int]) float64 {
	return windowError(m, func(r, h int) bool { return r != h })
}

// Pk returns the fraction of window positions where exactly one of reference
// and hypothesis places the two window ends in different segments.
func Pk(m confusion.Matrix[int]) float64 {
	return windowError(m, func(r, h int) bool { return (r == 0) != (h == 0) })
}

func windowError(m confusion.Matrix[int], disagree func(r, h int) bool) float64 {
	total := m.TotalUnits()
	if total == 0 {
		return 0
	}

	var wrong int64
	cats := m.Categories()
	for _, r := range cats {
		for _, h := range cats {
			if disagree(r, h) {
				wrong += m.Units(r, h)
			}
		}
	}
	return float64(wrong) / float64(total)
}

// WinPR returns window-based precision and recall. In each window the
// smaller of the two boundary counts is true positive, and any excess is a
// false positive (hypothesis) or false negative (reference).
func WinPR(m confusion.Matrix[int]) Retrieval {
	var tp, fp, fn int64
	cats := m.Categories()
	for _, r := range cats {
		for _, h := range cats {
			units := m.Units(r, h)
			tp += int64(min(r, h)) * units
			fp += int64(max(0, h-r)) * units
			fn += int64(max(0, r-h)) * units
		}
	}

	scale := float64(m.Scale())
	return retrieval(float64(tp)/scale, float64(fp)/scale, float64(fn)/scale)
}
