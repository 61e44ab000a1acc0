package dashboard

import (
	"bytes"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/leapstack-labs/launchdash/internal/analytics"
)

// FlexFloat decodes a JSON number or numeric string. Anything else, including
// null, leaves it unset instead of failing the whole payload.
type FlexFloat struct {
	Value float64
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		f.set(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			f.set(v)
		}
	}
	return nil
}

func (f *FlexFloat) set(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	f.Value, f.Set = v, true
}

// resolveSelector turns raw control values into a selector. A blank site
// means all sites; an unset bound falls back to the dataset bound.
func resolveSelector(site string, lo, hi FlexFloat, bounds analytics.Range) analytics.Selector {
	sel := analytics.Selector{Site: strings.TrimSpace(site), Payload: bounds}
	if sel.Site == "" || analytics.IsAllSites(sel.Site) {
		sel.Site = analytics.AllSites
	}
	if lo.Set {
		sel.Payload.Lo = lo.Value
	}
	if hi.Set {
		sel.Payload.Hi = hi.Value
	}
	return sel
}

// selectorFromSignals resolves the datastar signal payload.
func selectorFromSignals(s Signals, bounds analytics.Range) analytics.Selector {
	return resolveSelector(s.Site, s.PayloadLo, s.PayloadHi, bounds)
}

// selectorFromQuery resolves ?site=&lo=&hi= query parameters.
func selectorFromQuery(q url.Values, bounds analytics.Range) analytics.Selector {
	return resolveSelector(q.Get("site"), parseFlex(q.Get("lo")), parseFlex(q.Get("hi")), bounds)
}

func parseFlex(raw string) FlexFloat {
	var f FlexFloat
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		f.set(v)
	}
	return f
}
