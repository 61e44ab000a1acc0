// Package common provides shared types and utilities for UI features.
package common

import (
	"math"
	"strconv"
)

// FormatKg formats a payload mass without trailing zeros, e.g. "2500" or "2500.5".
func FormatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Mark is one labelled tick on the payload range control.
type Mark struct {
	Value float64
	Label string
}

// SliderMarks returns a mark every interval kg from lo up to hi, always
// including both ends. A non-positive interval yields only the ends.
func SliderMarks(lo, hi, interval float64) []Mark {
	marks := []Mark{{Value: lo, Label: FormatKg(lo) + " Kg"}}
	if hi <= lo {
		return marks
	}

	if interval > 0 {
		first := math.Ceil(lo/interval) * interval
		if first == lo {
			first += interval
		}
		for v := first; v < hi; v += interval {
			marks = append(marks, Mark{Value: v, Label: FormatKg(v) + " Kg"})
		}
	}

	return append(marks, Mark{Value: hi, Label: FormatKg(hi) + " Kg"})
}
