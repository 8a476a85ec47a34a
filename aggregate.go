package clientbook

import (
	"github.com/shopspring/decimal"
)

// StatusCounts counts rows per status. Every status has a count, possibly 0.
type StatusCounts [numStatuses]int

// Get returns the count for s.
func (c StatusCounts) Get(s Status) int {
	if s < 0 || int(s) >= len(c) {
		return 0
	}
	return c[s]
}

// KPIs are the portfolio-wide indicators of a set of rows.
type KPIs struct {
	Clients           int
	TotalAssets       decimal.Decimal
	TotalDividends12m decimal.Decimal
	// WeightedReturn12m is the sum of return times assets over the rows that
	// have both, divided by TotalAssets: a row with assets but no return
	// dilutes it. It is absent when no row has both or TotalAssets is zero.
	WeightedReturn12m Optional[decimal.Decimal]
	StatusCounts      StatusCounts
}

// Aggregate computes the KPIs of rows. rows is not modified.
func Aggregate(rows []Row) KPIs {
	var k KPIs
	weighted, qualifying := decimal.Zero, false
	for _, r := range rows {
		k.Clients++
		assets, hasAssets := r.Assets.Get()
		if hasAssets {
			k.TotalAssets = k.TotalAssets.Add(assets)
		}
		k.TotalDividends12m = k.TotalDividends12m.Add(r.Dividends12m.Or(decimal.Zero))
		if ret, ok := r.Return12m.Get(); ok && hasAssets {
			weighted = weighted.Add(ret.Mul(assets))
			qualifying = true
		}
		if r.Status >= 0 && int(r.Status) < len(k.StatusCounts) {
			k.StatusCounts[r.Status]++
		}
	}
	if qualifying && !k.TotalAssets.IsZero() {
		k.WeightedReturn12m = Some(weighted.Div(k.TotalAssets))
	}
	return k
}

// AdvisorKPIs are the KPIs of the rows of a single advisor.
type AdvisorKPIs struct {
	Advisor Optional[string]
	KPIs
}

// AggregateByAdvisor computes the KPIs of each advisor, in order of first
// appearance. Rows without an advisor are grouped last.
func AggregateByAdvisor(rows []Row) []AdvisorKPIs {
	var names []string
	groups := make(map[string][]Row)
	var orphans []Row
	for _, r := range rows {
		name, ok := r.Advisor.Get()
		if !ok {
			orphans = append(orphans, r)
			continue
		}
		if _, seen := groups[name]; !seen {
			names = append(names, name)
		}
		groups[name] = append(groups[name], r)
	}

	res := make([]AdvisorKPIs, 0, len(names)+1)
	for _, name := range names {
		res = append(res, AdvisorKPIs{Advisor: Some(name), KPIs: Aggregate(groups[name])})
	}
	if len(orphans) > 0 {
		res = append(res, AdvisorKPIs{Advisor: None[string](), KPIs: Aggregate(orphans)})
	}
	return res
}
