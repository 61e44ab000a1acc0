// Package dataset loads launch records into an immutable in-memory snapshot.
//
// A Dataset is built once at startup and then shared by reference. Nothing in
// this package mutates a Dataset after New returns, so concurrent readers need
// no locking.
package dataset

import (
	"fmt"
	"math"
)

// Outcome values as stored in the dataset's binary outcome column.
const (
	OutcomeFailure = 0
	OutcomeSuccess = 1
)

// Record is one launch attempt.
type Record struct {
	Site           string  `json:"site"`
	PayloadMass    float64 `json:"payloadMass"`
	Outcome        int     `json:"outcome"`
	BoosterVersion string  `json:"boosterVersion"`
}

// Succeeded reports whether the launch outcome was a success.
func (r Record) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// Dataset is a read-only snapshot of launch records.
type Dataset struct {
	records    []Record
	sites      []string
	minPayload float64
	maxPayload float64
	source     string
}

// New validates records and builds a snapshot. The slice is copied.
// source is a human-readable origin used in logs and error messages.
func New(records []Record, source string) (*Dataset, error) {
	if len(records) == 0 {
		return nil, loadErr(source, 0, ErrEmpty)
	}

	ds := &Dataset{
		records:    make([]Record, len(records)),
		minPayload: math.Inf(1),
		maxPayload: math.Inf(-1),
		source:     source,
	}
	copy(ds.records, records)

	seen := make(map[string]bool)
	for i, r := range ds.records {
		if err := validate(r); err != nil {
			return nil, loadErr(source, i+1, err)
		}
		if !seen[r.Site] {
			seen[r.Site] = true
			ds.sites = append(ds.sites, r.Site)
		}
		ds.minPayload = math.Min(ds.minPayload, r.PayloadMass)
		ds.maxPayload = math.Max(ds.maxPayload, r.PayloadMass)
	}

	return ds, nil
}

func validate(r Record) error {
	if r.Site == "" {
		return fmt.Errorf("%w: empty launch site", ErrMalformed)
	}
	if math.IsNaN(r.PayloadMass) || math.IsInf(r.PayloadMass, 0) || r.PayloadMass < 0 {
		return fmt.Errorf("%w: payload mass %v is not a non-negative number", ErrMalformed, r.PayloadMass)
	}
	if r.Outcome != OutcomeFailure && r.Outcome != OutcomeSuccess {
		return fmt.Errorf("%w: got %d", ErrInvalidOutcome, r.Outcome)
	}
	return nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Record returns the i-th record in load order.
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// Records returns a copy of all records in load order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Each calls fn for every record in load order without copying.
func (d *Dataset) Each(fn func(i int, r Record)) {
	for i, r := range d.records {
		fn(i, r)
	}
}

// PayloadBounds returns the minimum and maximum payload mass across all records.
func (d *Dataset) PayloadBounds() (lo, hi float64) {
	return d.minPayload, d.maxPayload
}

// Sites returns the distinct launch sites in first-seen order.
func (d *Dataset) Sites() []string {
	out := make([]string, len(d.sites))
	copy(out, d.sites)
	return out
}

// HasSite reports whether any record was launched from site.
func (d *Dataset) HasSite(site string) bool {
	for _, s := range d.sites {
		if s == site {
			return true
		}
	}
	return false
}

// Source describes where the snapshot was loaded from.
func (d *Dataset) Source() string {
	return d.source
}
