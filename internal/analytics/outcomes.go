package analytics

import (
	"sort"
	"strconv"

	"github.com/leapstack-labs/launchdash/internal/dataset"
)

// OutcomeCount is one slice of the outcome pie.
// Key is a site name (all-sites view) or an outcome value "0"/"1" (single site).
type OutcomeCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// OutcomeCounts groups launches for the pie chart.
//
// For AllSites it returns one entry per distinct site whose count is the number
// of successful launches from that site, sorted by site name. For a concrete
// site it returns one entry per outcome value present at that site, "0" before
// "1"; an outcome that never occurs gets no entry. A site with no records
// yields an empty, non-nil slice.
func OutcomeCounts(ds *dataset.Dataset, site string) []OutcomeCount {
	if IsAllSites(site) {
		return successesBySite(ds)
	}
	return outcomesAtSite(ds, site)
}

func successesBySite(ds *dataset.Dataset) []OutcomeCount {
	sums := make(map[string]int)
	ds.Each(func(_ int, r dataset.Record) {
		sums[r.Site] += r.Outcome
	})
	return sortedCounts(sums)
}

func outcomesAtSite(ds *dataset.Dataset, site string) []OutcomeCount {
	v := filter(ds, siteMatcher(site))

	counts := make(map[string]int)
	for i := 0; i < v.len(); i++ {
		counts[strconv.Itoa(v.at(i).Outcome)]++
	}
	return sortedCounts(counts)
}

func sortedCounts(m map[string]int) []OutcomeCount {
	out := make([]OutcomeCount, 0, len(m))
	for k, n := range m {
		out = append(out, OutcomeCount{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}

// TotalCount sums the counts of all groups.
func TotalCount(counts []OutcomeCount) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}

// OutcomeLabel returns the display name of an outcome key.
func OutcomeLabel(key string) string {
	switch key {
	case "0":
		return "Failure"
	case "1":
		return "Success"
	default:
		return key
	}
}
