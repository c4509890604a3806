// Package aggregate groups qualifying listings by suburb and computes the
// per-suburb statistics of the report.
package aggregate

import (
	"github.com/okian/rentyield/internal/domain/model"
	"github.com/okian/rentyield/internal/domain/number"
)

// group collects the member ratios of one suburb.
type group struct {
	name        string
	yields      []number.Value
	pricesPerSq []number.Value
}

// BySuburb groups listings by exact suburb string (no trimming, case-sensitive)
// and summarises each group. Groups come back in order of first occurrence,
// which the ranker relies on for stable tie-breaking.
func BySuburb(listings []model.DerivedListing) []model.SuburbSummary {
	index := make(map[string]int)
	groups := make([]*group, 0)

	for _, l := range listings {
		i, ok := index[l.Suburb]
		if !ok {
			i = len(groups)
			index[l.Suburb] = i
			groups = append(groups, &group{name: l.Suburb})
		}
		g := groups[i]
		g.yields = append(g.yields, l.RentalYield)
		g.pricesPerSq = append(g.pricesPerSq, l.PricePerSqM)
	}

	summaries := make([]model.SuburbSummary, len(groups))
	for i, g := range groups {
		summaries[i] = g.summarize()
	}
	return summaries
}

func (g *group) summarize() model.SuburbSummary {
	return model.SuburbSummary{
		Name:               g.name,
		AverageYield:       Mean(g.yields),
		MedianPricePerSqM:  Median(g.pricesPerSq),
		StdDevYield:        StdDev(g.yields),
		AveragePricePerSqM: Mean(g.pricesPerSq),
		PropertyCount:      len(g.yields),
	}
}
