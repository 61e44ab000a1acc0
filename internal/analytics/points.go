package analytics

import (
	"sort"

	"github.com/leapstack-labs/launchdash/internal/dataset"
)

// Point is one launch plotted on the payload/outcome scatter chart.
type Point struct {
	Site           string  `json:"site"`
	PayloadMass    float64 `json:"payloadMass"`
	Outcome        int     `json:"outcome"`
	BoosterVersion string  `json:"boosterVersion"`
}

// CorrelationPoints returns every launch whose payload lies in r (inclusive),
// restricted to site unless it is AllSites, in dataset order. An inverted range
// or an unknown site yields an empty, non-nil slice.
func CorrelationPoints(ds *dataset.Dataset, site string, r Range) []Point {
	if r.Inverted() {
		return []Point{}
	}

	atSite := siteMatcher(site)
	v := filter(ds, func(rec dataset.Record) bool {
		return r.Contains(rec.PayloadMass) && atSite(rec)
	})

	points := make([]Point, 0, v.len())
	for i := 0; i < v.len(); i++ {
		rec := v.at(i)
		points = append(points, Point{
			Site:           rec.Site,
			PayloadMass:    rec.PayloadMass,
			Outcome:        rec.Outcome,
			BoosterVersion: rec.BoosterVersion,
		})
	}
	return points
}

// ByBooster splits points into per-booster-category series, keeping the
// input order inside each series. Categories are returned sorted.
func ByBooster(points []Point) ([]string, map[string][]Point) {
	series := make(map[string][]Point)
	for _, p := range points {
		series[p.BoosterVersion] = append(series[p.BoosterVersion], p)
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, series
}
