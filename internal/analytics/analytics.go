// Package analytics computes the derived views behind the dashboard charts.
//
// Both entry points, OutcomeCounts and CorrelationPoints, are pure functions of
// an immutable dataset snapshot and the selector values. They never fail:
// unknown sites and inverted ranges produce empty results.
package analytics

import (
	"math"
	"strings"

	"github.com/leapstack-labs/launchdash/internal/dataset"
)

// AllSites is the selector value meaning "do not restrict by launch site".
// It is matched case-insensitively after trimming, so a launch site whose
// name is any casing of "all" cannot be selected on its own.
const AllSites = "ALL"

// IsAllSites reports whether site is the all-sites sentinel (case-insensitive).
func IsAllSites(site string) bool {
	return strings.EqualFold(strings.TrimSpace(site), AllSites)
}

// Range is an inclusive payload mass interval in kilograms.
type Range struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// FullRange returns the range spanning every payload in ds.
func FullRange(ds *dataset.Dataset) Range {
	lo, hi := ds.PayloadBounds()
	return Range{Lo: lo, Hi: hi}
}

// Contains reports whether v lies in [Lo, Hi].
func (r Range) Contains(v float64) bool {
	return r.Lo <= v && v <= r.Hi
}

// Inverted reports whether the range can match nothing.
func (r Range) Inverted() bool {
	return r.Lo > r.Hi || math.IsNaN(r.Lo) || math.IsNaN(r.Hi)
}

// Selector is the transient UI state driving both views.
type Selector struct {
	Site    string `json:"site"`
	Payload Range  `json:"payload"`
}

// DefaultSelector selects all sites over the full payload range of ds.
func DefaultSelector(ds *dataset.Dataset) Selector {
	return Selector{Site: AllSites, Payload: FullRange(ds)}
}

// view is an ordered list of record indices into a snapshot.
type view struct {
	ds  *dataset.Dataset
	idx []int
}

// filter keeps the records for which keep returns true, in load order.
func filter(ds *dataset.Dataset, keep func(dataset.Record) bool) view {
	v := view{ds: ds, idx: make([]int, 0, ds.Len())}
	ds.Each(func(i int, r dataset.Record) {
		if keep(r) {
			v.idx = append(v.idx, i)
		}
	})
	return v
}

func (v view) len() int {
	return len(v.idx)
}

func (v view) at(i int) dataset.Record {
	return v.ds.Record(v.idx[i])
}

// siteMatcher returns a predicate for site, matching everything for AllSites.
func siteMatcher(site string) func(dataset.Record) bool {
	if IsAllSites(site) {
		return func(dataset.Record) bool { return true }
	}
	return func(r dataset.Record) bool { return r.Site == site }
}
